package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainFor(t *testing.T) {
	tests := map[string]string{
		"vascular_health_rules.json":       "vascular_health",
		"data/sleep_rules.json":            "sleep",
		"finger_multidomain_evidence.json": "finger_multidomain_evidence",
	}
	for in, want := range tests {
		assert.Equal(t, want, DomainFor(in), in)
	}
}

func TestFlatten_Object(t *testing.T) {
	data := []byte(`{
		"blood_pressure": {
			"target": "below 130/80",
			"actions": ["reduce salt", "walk daily"],
			"thresholds": {"systolic": 130, "diastolic": 80}
		},
		"summary": "Vascular health matters",
		"weight": 3.5
	}`)

	docs, err := Flatten(data, "vascular_health_rules.json")
	require.NoError(t, err)
	require.Len(t, docs, 3)

	assert.Equal(t, "blood_pressure:\n"+
		"  target: below 130/80\n"+
		"  actions: reduce salt, walk daily\n"+
		"  thresholds:\n"+
		"    systolic: 130\n"+
		"    diastolic: 80", docs[0].Content)
	assert.Equal(t, "blood_pressure", docs[0].Metadata.Key)
	assert.Equal(t, "vascular_health", docs[0].Metadata.Domain)
	assert.Equal(t, "vascular_health_rules.json", docs[0].Metadata.Source)

	assert.Equal(t, "Vascular health matters", docs[1].Content)
	assert.Equal(t, "3.5", docs[2].Content)
}

func TestFlatten_Array(t *testing.T) {
	data := []byte(`[
		{"study": "FINGER", "outcome": "improved cognition", "arms": {"diet": true}},
		"plain note",
		[1, 2]
	]`)

	docs, err := Flatten(data, "finger_multidomain_evidence.json")
	require.NoError(t, err)
	require.Len(t, docs, 3)

	assert.Equal(t, "  study: FINGER\n  outcome: improved cognition\n  arms:\n    diet: true", docs[0].Content)
	assert.Empty(t, docs[0].Metadata.Key)
	assert.Equal(t, "plain note", docs[1].Content)
	assert.Equal(t, "[1, 2]", docs[2].Content)
}

func TestFlatten_NestedContainersInLists(t *testing.T) {
	data := []byte(`{"k": {"items": [{"a": "x"}, "y"]}}`)
	docs, err := Flatten(data, "lifestyle_rules.json")
	require.NoError(t, err)
	assert.Equal(t, "k:\n  items: {\"a\": \"x\"}, y", docs[0].Content)
}

func TestFlatten_Errors(t *testing.T) {
	for name, data := range map[string]string{
		"malformed": `{"a": `,
		"scalar":    `"just text"`,
		"trailing":  `{} {}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Flatten([]byte(data), "x.json")
			assert.Error(t, err)
		})
	}
}
