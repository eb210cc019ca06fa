package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecKeepsAmountsAsStrings(t *testing.T) {
	var codec Codec
	assert.Equal(t, "json", codec.Name())

	data, err := codec.Marshal(&CalculateResponse{
		FareType:       "regular",
		Payment:        "26.00",
		RidesAvailable: "100000000000000000000",
	})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"payment":"26.00"`)
	assert.Contains(t, string(data), `"rides_available":"100000000000000000000"`)

	var got CalculateResponse
	require.NoError(t, codec.Unmarshal(data, &got))
	assert.Equal(t, "26.00", got.Payment)
}

func TestCodecUnmarshalEmpty(t *testing.T) {
	var req ListFaresRequest
	assert.NoError(t, Codec{}.Unmarshal(nil, &req))
}

func TestUpdateSettingsRequestOmitsUnsetFields(t *testing.T) {
	bonusMin := "5.50"
	data, err := Codec{}.Marshal(&UpdateSettingsRequest{BonusMin: &bonusMin})
	require.NoError(t, err)
	assert.JSONEq(t, `{"bonus_min":"5.50"}`, string(data))
}
