package jsonrepair_test

import (
	"encoding/json"
	"testing"

	"github.com/myrjola/casegen/internal/jsonrepair"
	"github.com/stretchr/testify/require"
)

func TestRepairAndParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		raw     string
		want    map[string]any
		wantErr bool
	}{
		{
			name: "valid object is untouched",
			raw:  `{"a":"b","c":"d"}`,
			want: map[string]any{"a": "b", "c": "d"},
		},
		{
			name: "leading and trailing whitespace",
			raw:  "  \n\t" + `{"a":1}` + " \n",
			want: map[string]any{"a": float64(1)},
		},
		{
			name: "markdown fenced object",
			raw:  "```json\n{\"a\":\"b\"}\n```",
			want: map[string]any{"a": "b"},
		},
		{
			name: "prose before object",
			raw:  `Here is the JSON you asked for: {"a":"b"}`,
			want: map[string]any{"a": "b"},
		},
		{
			name: "truncated inside string value",
			raw:  `{"a":"b","c":"d`,
			want: map[string]any{"a": "b", "c": "d"},
		},
		{
			name: "truncated after string value",
			raw:  `{"a":"b","c":"d"`,
			want: map[string]any{"a": "b", "c": "d"},
		},
		{
			name: "missing array and object closers",
			raw:  `{"a":[1,2,3`,
			want: map[string]any{"a": []any{float64(1), float64(2), float64(3)}},
		},
		{
			name: "nested object truncated mid array",
			raw:  `{"a":{"b":[1,2`,
			want: map[string]any{"a": map[string]any{"b": []any{float64(1), float64(2)}}},
		},
		{
			name: "unterminated string closed before structural brace",
			raw:  `{"a":{"b":"val}`,
			want: map[string]any{"a": map[string]any{"b": "val"}},
		},
		{
			name: "escaped quote inside string survives",
			raw:  `{"a":"say \"hi\"","c":"d`,
			want: map[string]any{"a": `say "hi"`, "c": "d"},
		},
		{
			name: "escaped backslash at end of string",
			raw:  `{"a":"b\\","c":1}`,
			want: map[string]any{"a": `b\`, "c": float64(1)},
		},
		{
			name:    "plain prose fails",
			raw:     "I could not produce the case, sorry.",
			wantErr: true,
		},
		{
			name:    "empty input fails",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "lone brace with garbage fails",
			raw:     `{this is not json at all`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := jsonrepair.RepairAndParse(tt.raw)

			if tt.wantErr {
				require.Error(t, err, "expected repair failure")
				require.ErrorIs(t, err, jsonrepair.ErrUnrecoverableFormat, "wrong sentinel")
				return
			}

			require.NoError(t, err, "repair failed")
			require.Equal(t, tt.want, got, "parsed object mismatch")
		})
	}
}

// Repair must be a no-op on already-valid input so that the repaired parse equals a direct parse.
func TestRepairIdempotentOnValidJSON(t *testing.T) {
	t.Parallel()
	valid := []string{
		`{}`,
		`{"title":"The Vanishing Violinist","entities":[{"id":"entity-1","isCulprit":false}]}`,
		`{"nested":{"deep":{"deeper":[1,2,{"x":"}"}]}},"quote":"a \"quoted\" word"}`,
	}
	for _, s := range valid {
		repaired, err := jsonrepair.Repair(s)
		require.NoError(t, err, "repair of valid JSON errored")
		require.Equal(t, s, repaired, "repair modified valid JSON")

		var direct, viaRepair map[string]any
		require.NoError(t, json.Unmarshal([]byte(s), &direct))
		viaRepair, err = jsonrepair.RepairAndParse(s)
		require.NoError(t, err)
		require.Equal(t, direct, viaRepair, "repaired parse differs from direct parse")
	}
}

func TestRepairAppendsExactClosers(t *testing.T) {
	t.Parallel()
	repaired, err := jsonrepair.Repair(`{"a":[1,2,3`)
	require.NoError(t, err)
	require.Equal(t, `{"a":[1,2,3]}`, repaired, "closers should be ]} in that order")
}

func TestDecodeIntoStruct(t *testing.T) {
	t.Parallel()
	var out struct {
		Title string   `json:"title"`
		Clues []string `json:"clues"`
	}
	raw := "```json\n" + `{"title":"Death at the Docks","clues":["a torn glove","mud on the sill`
	err := jsonrepair.Decode(raw, &out)
	require.NoError(t, err, "decode failed")
	require.Equal(t, "Death at the Docks", out.Title)
	require.Equal(t, []string{"a torn glove", "mud on the sill"}, out.Clues)
}
