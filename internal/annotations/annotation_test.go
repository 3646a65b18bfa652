package annotations

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotationJSONRoundTrip(t *testing.T) {
	fill := "#ff0000"
	opacity := 0.5
	original := Annotation{
		ID:         uuid.New(),
		DocumentID: uuid.New(),
		Variant:    VariantRect,
		Page:       4,
		Position:   Point{X: 12.5, Y: 42},
		Props: &ShapeProps{
			Color:       "#1976d2",
			BorderWidth: 3,
			Fill:        &fill,
			FillOpacity: &opacity,
		},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Annotation
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, original.ID, decoded.ID)
	assert.Equal(t, original.Variant, decoded.Variant)
	assert.Equal(t, original.Page, decoded.Page)
	assert.Equal(t, original.Position, decoded.Position)

	shape := decoded.Props.(*ShapeProps)
	require.NotNil(t, shape.Fill)
	assert.Equal(t, "#ff0000", *shape.Fill)
}

func TestAnnotationJSONRejectsUnknownVariant(t *testing.T) {
	payload := []byte(`{"id":"` + uuid.NewString() + `","type":"sticker","page":1}`)

	var decoded Annotation
	err := json.Unmarshal(payload, &decoded)
	assert.ErrorIs(t, err, ErrInvalidVariant)
}

func TestParseVariant(t *testing.T) {
	for _, valid := range []string{"text", "rect", "circle", "line", "highlight", "image", "comment", "draw"} {
		v, err := ParseVariant(valid)
		require.NoError(t, err)
		assert.Equal(t, Variant(valid), v)
	}

	_, err := ParseVariant("arrow")
	assert.ErrorIs(t, err, ErrInvalidVariant)
}

func TestDecodePatchRejectsForeignFields(t *testing.T) {
	// A text patch cannot smuggle in line fields.
	_, err := decodePatch(VariantText, []byte(`{"width": 5}`))
	assert.ErrorIs(t, err, ErrVariantMismatch)

	patch, err := decodePatch(VariantText, []byte(`{"text": "hello", "bold": true}`))
	require.NoError(t, err)

	text := patch.(*TextPatch)
	require.NotNil(t, text.Text)
	assert.Equal(t, "hello", *text.Text)
	require.NotNil(t, text.Bold)
	assert.True(t, *text.Bold)
}

func TestDecodePatchPerVariant(t *testing.T) {
	cases := map[Variant]string{
		VariantText:      `{"font_size": 20}`,
		VariantRect:      `{"fill": "#00ff00"}`,
		VariantCircle:    `{"border_width": 4}`,
		VariantLine:      `{"end": {"x": 1, "y": 2}}`,
		VariantHighlight: `{"opacity": 0.9}`,
		VariantImage:     `{"source": "logo.png"}`,
		VariantComment:   `{"text": "note"}`,
		VariantDraw:      `{"points": [{"x": 0, "y": 0}, {"x": 1, "y": 1}]}`,
	}

	for variant, body := range cases {
		patch, err := decodePatch(variant, []byte(body))
		require.NoError(t, err, "variant %s", variant)
		assert.True(t, patch.appliesTo(variant), "variant %s", variant)
	}
}
