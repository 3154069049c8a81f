package factcheck

import (
	"testing"

	"github.com/veristream/veristream/internal/model"
)

func TestMapRating(t *testing.T) {
	tests := []struct {
		rating string
		want   model.Verdict
	}{
		{"False", model.VerdictDisputed},
		{"FALSE", model.VerdictDisputed},
		{"Mostly False", model.VerdictDisputed},
		{"Misleading", model.VerdictDisputed},
		{"Partly misleading", model.VerdictDisputed},
		{"True", model.VerdictVerified},
		{"Mostly True", model.VerdictVerified},
		{"true", model.VerdictVerified},
		{"Unproven", model.VerdictQuestionable},
		{"Mixture", model.VerdictQuestionable},
		{"Needs Context", model.VerdictQuestionable},
		{"", model.VerdictQuestionable},
		// The false/misleading rule wins when both keywords appear.
		{"Mostly False and misleading", model.VerdictDisputed},
		{"Mostly False, not true", model.VerdictDisputed},
		{"Misleading but partially true", model.VerdictDisputed},
	}

	for _, tt := range tests {
		t.Run(tt.rating, func(t *testing.T) {
			if got := MapRating(tt.rating); got != tt.want {
				t.Errorf("MapRating(%q) = %s, want %s", tt.rating, got, tt.want)
			}
		})
	}
}
