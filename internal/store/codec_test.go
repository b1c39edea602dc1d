package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/checklist/internal/model"
)

func TestEncodeIsPrettyPrinted(t *testing.T) {
	b, err := Encode(model.Collection{{ID: "t1", Name: "G"}})
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"id\": \"t1\",\n    \"name\": \"G\",\n    \"items\": []\n  }\n]", string(b))

	b, err = Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		corrupt bool
	}{
		{name: "empty input", in: "", want: 0},
		{name: "empty array", in: "[]", want: 0},
		{name: "null", in: "null", want: 0},
		{name: "jsonc comments and trailing comma", in: "[\n // hand edit\n {\"id\":\"a\",\"name\":\"A\",\"items\":[],},\n]", want: 1},
		{name: "garbage", in: "{not json", corrupt: true},
		{name: "wrong shape", in: `{"id":"a"}`, corrupt: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.in))
			if tt.corrupt {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrCorrupt)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestDecodeFillsNilItems(t *testing.T) {
	got, err := Decode([]byte(`[{"id":"a","name":"A"}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotNil(t, got[0].Items)
}
