package ledgerv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/models"
)

func TestJSONCodec(t *testing.T) {
	codec := JSONCodec{}
	assert.Equal(t, "json", codec.Name())

	in := &ExpenseFilter{From: models.NewDate(2024, 3, 1), Person: "Alice"}
	data, err := codec.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"2024-03-01","to":"","person":"Alice"}`, string(data))

	var out ExpenseFilter
	require.NoError(t, codec.Unmarshal(data, &out))
	assert.Equal(t, 0, out.From.Compare(in.From))
	assert.True(t, out.To.IsZero())
	assert.Equal(t, "Alice", out.Person)
}

func TestJSONCodec_EmptyBody(t *testing.T) {
	var req ListPeopleRequest
	require.NoError(t, JSONCodec{}.Unmarshal(nil, &req))
}

func TestJSONCodec_AmountsStayMinorUnits(t *testing.T) {
	data, err := JSONCodec{}.Marshal(&ComputeSplitResponse{
		Split: models.Split{{Person: "A", Amount: 1050}},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"split":[{"person":"A","amount":1050}]}`, string(data))
}

func TestJSONCodec_RejectsBadDate(t *testing.T) {
	var f ExpenseFilter
	err := JSONCodec{}.Unmarshal([]byte(`{"from":"03/01/2024"}`), &f)
	assert.Error(t, err)
}
