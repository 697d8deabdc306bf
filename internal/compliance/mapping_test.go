package compliance

import (
	"bytes"
	"log/slog"
	"testing"

	"compliance-hub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapping(id uint, primary, secondary models.Control, rel models.MappingRelationship) models.ControlMapping {
	return models.ControlMapping{
		ID:                 id,
		PrimaryControlID:   primary.ID,
		SecondaryControlID: secondary.ID,
		PrimaryControl:     primary,
		SecondaryControl:   secondary,
		Relationship:       rel,
	}
}

func TestResolveMappingsEmpty(t *testing.T) {
	out := ResolveMappings(nil, nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestResolveMappingsSingle(t *testing.T) {
	a := models.Control{ID: 1, Code: "A.5.1", Title: "Policies for information security"}
	b := models.Control{ID: 2, Code: "12.1.1", Title: "Security policy"}

	out := ResolveMappings([]models.ControlMapping{mapping(1, a, b, models.RelationshipEquivalent)}, nil)

	require.Len(t, out, 1)
	assert.Equal(t, []RelatedControl{{ID: 2, ControlID: "12.1.1", Title: "Security policy", Relationship: "equivalent"}}, out[1])
	_, hasB := out[2]
	assert.False(t, hasB, "mappings are directed")
}

func TestResolveMappingsGroupsInInputOrder(t *testing.T) {
	a := models.Control{ID: 1, Code: "A.8.5"}
	b := models.Control{ID: 2, Code: "8.3.1"}
	c := models.Control{ID: 3, Code: "8.4.2"}
	d := models.Control{ID: 4, Code: "A.8.24"}

	out := ResolveMappings([]models.ControlMapping{
		mapping(1, a, c, models.RelationshipPartial),
		mapping(2, d, b, models.RelationshipRelated),
		mapping(3, a, b, models.RelationshipRelated),
	}, nil)

	require.Len(t, out, 2)
	require.Len(t, out[1], 2)
	assert.Equal(t, "8.4.2", out[1][0].ControlID)
	assert.Equal(t, "partial", out[1][0].Relationship)
	assert.Equal(t, "8.3.1", out[1][1].ControlID)
	assert.Equal(t, "8.3.1", out[4][0].ControlID)
}

func TestResolveMappingsSkipsMissingControls(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	a := models.Control{ID: 1, Code: "A.5.1"}
	b := models.Control{ID: 2, Code: "12.1.1"}
	dangling := models.ControlMapping{ID: 7, PrimaryControlID: 1, SecondaryControlID: 99, PrimaryControl: a}

	out := ResolveMappings([]models.ControlMapping{dangling, mapping(8, a, b, models.RelationshipRelated)}, log)

	require.Len(t, out[1], 1)
	assert.Equal(t, uint(2), out[1][0].ID)
	assert.Contains(t, buf.String(), "skipping")
	assert.Contains(t, buf.String(), "mapping_id=7")
}
