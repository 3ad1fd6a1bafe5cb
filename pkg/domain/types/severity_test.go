package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/adtool/pkg/domain/types"
)

func TestSeverity_Rank(t *testing.T) {
	gt.Value(t, types.SeverityError.Rank()).Equal(0)
	gt.Value(t, types.SeverityWarn.Rank()).Equal(1)
	gt.Value(t, types.SeverityInfo.Rank()).Equal(2)
	gt.Value(t, types.Severity("FATAL").Rank()).Equal(99)
}

func TestSeverity_IsGap(t *testing.T) {
	gt.Bool(t, types.SeverityError.IsGap()).True()
	gt.Bool(t, types.SeverityWarn.IsGap()).True()
	gt.Bool(t, types.SeverityInfo.IsGap()).False()
}

func TestParseSeverity(t *testing.T) {
	for _, s := range types.AllSeverities() {
		parsed, err := types.ParseSeverity(s.String())
		gt.NoError(t, err).Required()
		gt.Value(t, parsed).Equal(s)
	}

	_, err := types.ParseSeverity("error")
	gt.Error(t, err)
}
