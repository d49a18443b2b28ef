package valuation

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivide(t *testing.T) {
	t.Run("zero denominator is undefined", func(t *testing.T) {
		r := Divide(d("5"), decimal.Zero)
		assert.False(t, r.Defined())
		assert.Equal(t, UndefinedDisplay, r.String())
	})

	t.Run("negative denominator is undefined", func(t *testing.T) {
		assert.False(t, Divide(d("5"), d("-1")).Defined())
	})

	t.Run("zero value ratio is undefined", func(t *testing.T) {
		var r Ratio
		assert.False(t, r.Defined())
	})

	t.Run("defined ratio", func(t *testing.T) {
		r := Divide(d("6000000"), d("3500000"))
		v, ok := r.Value()
		require.True(t, ok)
		assert.Equal(t, "1.7142857142857143", v.String())
		assert.Equal(t, "1.71", r.String())
		assert.Equal(t, "1.71x", r.Multiple())
	})

	t.Run("percent", func(t *testing.T) {
		assert.Equal(t, "125.00", Percent(d("12500000"), d("10000000")).String())
		assert.False(t, Percent(d("1"), decimal.Zero).Defined())
	})
}

func TestRatioJSON(t *testing.T) {
	type payload struct {
		MOIC Ratio `json:"moic"`
		DPI  Ratio `json:"dpi"`
	}

	out, err := json.Marshal(payload{MOIC: Divide(d("6000000"), d("3500000"))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"moic":1.7143,"dpi":null}`, string(out))

	var back payload
	require.NoError(t, json.Unmarshal(out, &back))
	assert.True(t, back.MOIC.Defined())
	assert.False(t, back.DPI.Defined())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		classify func(Ratio) Class
		value    string
		want     Class
	}{
		{"MOIC strong at 2", ClassifyMOIC, "2", ClassStrong},
		{"MOIC moderate at 1", ClassifyMOIC, "1", ClassModerate},
		{"MOIC weak below 1", ClassifyMOIC, "0.99", ClassWeak},
		{"TVPI strong at 1.5", ClassifyTVPI, "1.5", ClassStrong},
		{"TVPI moderate at 1.49", ClassifyTVPI, "1.49", ClassModerate},
		{"TVPI weak below 1", ClassifyTVPI, "0.5", ClassWeak},
		{"DPI strong at 1", ClassifyDPI, "1", ClassStrong},
		{"DPI weak below 1", ClassifyDPI, "0.09", ClassWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.classify(Divide(d(tt.value), decimal.NewFromInt(1))))
		})
	}

	t.Run("undefined is unrated", func(t *testing.T) {
		assert.Equal(t, ClassUnrated, ClassifyMOIC(Ratio{}))
		assert.Equal(t, ClassUnrated, ClassifyTVPI(Ratio{}))
		assert.Equal(t, ClassUnrated, ClassifyDPI(Ratio{}))
	})
}
