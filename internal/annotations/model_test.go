package annotations

import (
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T) *Model {
	t.Helper()
	return NewModel(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func TestCreateAppliesVariantDefaults(t *testing.T) {
	model := newModel(t)
	docID := uuid.New()

	tests := []struct {
		variant Variant
		check   func(t *testing.T, props Properties)
	}{
		{VariantText, func(t *testing.T, props Properties) {
			text := props.(*TextProps)
			assert.Equal(t, 16, text.FontSize)
			assert.Equal(t, "Arial", text.FontFamily)
			assert.Equal(t, "#000000", text.Color)
		}},
		{VariantRect, func(t *testing.T, props Properties) {
			shape := props.(*ShapeProps)
			assert.Equal(t, "#1976d2", shape.Color)
			assert.Equal(t, 2, shape.BorderWidth)
			assert.Nil(t, shape.Fill)
		}},
		{VariantCircle, func(t *testing.T, props Properties) {
			shape := props.(*ShapeProps)
			assert.Equal(t, "#1976d2", shape.Color)
		}},
		{VariantLine, func(t *testing.T, props Properties) {
			line := props.(*LineProps)
			assert.Equal(t, "#1976d2", line.Color)
			assert.Equal(t, 2, line.Width)
		}},
		{VariantHighlight, func(t *testing.T, props Properties) {
			hl := props.(*HighlightProps)
			assert.Equal(t, "#ffff00", hl.Color)
			assert.Equal(t, 0.3, hl.Opacity)
		}},
		{VariantImage, func(t *testing.T, props Properties) {
			img := props.(*ImageProps)
			assert.Equal(t, 200, img.Width)
			assert.Equal(t, 150, img.Height)
		}},
		{VariantComment, func(t *testing.T, props Properties) {
			comment := props.(*CommentProps)
			assert.Empty(t, comment.Text)
		}},
		{VariantDraw, func(t *testing.T, props Properties) {
			draw := props.(*DrawProps)
			assert.Equal(t, "#d32f2f", draw.Color)
			assert.Equal(t, 3, draw.Width)
		}},
	}

	for _, tc := range tests {
		t.Run(string(tc.variant), func(t *testing.T) {
			ann, err := model.Create(tc.variant, docID, 1, Point{X: 10, Y: 20})
			require.NoError(t, err)
			assert.Equal(t, tc.variant, ann.Variant)
			assert.Equal(t, docID, ann.DocumentID)
			tc.check(t, ann.Props)
		})
	}
}

func TestCreateRejectsInvalidPage(t *testing.T) {
	model := newModel(t)

	_, err := model.Create(VariantText, uuid.New(), 0, Point{})
	assert.ErrorIs(t, err, ErrInvalidPage)
}

func TestSingleSelection(t *testing.T) {
	model := newModel(t)
	docID := uuid.New()

	first, err := model.Create(VariantText, docID, 1, Point{})
	require.NoError(t, err)
	second, err := model.Create(VariantRect, docID, 1, Point{})
	require.NoError(t, err)

	_, err = model.Select(first.ID)
	require.NoError(t, err)

	selected := model.Selected()
	require.NotNil(t, selected)
	assert.Equal(t, first.ID, selected.ID)

	// Selecting another annotation replaces the previous selection.
	_, err = model.Select(second.ID)
	require.NoError(t, err)

	selected = model.Selected()
	require.NotNil(t, selected)
	assert.Equal(t, second.ID, selected.ID)

	model.Deselect()
	assert.Nil(t, model.Selected())
}

func TestSelectUnknown(t *testing.T) {
	model := newModel(t)

	_, err := model.Select(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, model.Selected())
}

func TestUpdateSelectedHighlight(t *testing.T) {
	model := newModel(t)

	ann, err := model.Create(VariantHighlight, uuid.New(), 3, Point{X: 50, Y: 60})
	require.NoError(t, err)

	_, err = model.Select(ann.ID)
	require.NoError(t, err)

	opacity := 0.8
	updated, err := model.UpdateSelected(&HighlightPatch{Opacity: &opacity})
	require.NoError(t, err)
	require.NotNil(t, updated)

	hl := updated.Props.(*HighlightProps)
	assert.Equal(t, 0.8, hl.Opacity)
	assert.Equal(t, "#ffff00", hl.Color)
}

func TestUpdateSelectedShapeFill(t *testing.T) {
	model := newModel(t)

	ann, err := model.Create(VariantRect, uuid.New(), 1, Point{})
	require.NoError(t, err)
	_, err = model.Select(ann.ID)
	require.NoError(t, err)

	fill := "#00ff00"
	updated, err := model.UpdateSelected(&ShapePatch{Fill: &fill})
	require.NoError(t, err)

	shape := updated.Props.(*ShapeProps)
	require.NotNil(t, shape.Fill)
	assert.Equal(t, "#00ff00", *shape.Fill)
	require.NotNil(t, shape.FillOpacity)
	assert.Equal(t, 1.0, *shape.FillOpacity)

	// An empty fill clears both the fill and its opacity.
	clear := ""
	updated, err = model.UpdateSelected(&ShapePatch{Fill: &clear})
	require.NoError(t, err)

	shape = updated.Props.(*ShapeProps)
	assert.Nil(t, shape.Fill)
	assert.Nil(t, shape.FillOpacity)
}

func TestUpdateSelectedVariantMismatch(t *testing.T) {
	model := newModel(t)

	ann, err := model.Create(VariantText, uuid.New(), 1, Point{})
	require.NoError(t, err)
	_, err = model.Select(ann.ID)
	require.NoError(t, err)

	width := 5
	_, err = model.UpdateSelected(&LinePatch{Width: &width})
	assert.ErrorIs(t, err, ErrVariantMismatch)

	// The annotation is untouched after the rejected update.
	current := model.Selected()
	require.NotNil(t, current)
	text := current.Props.(*TextProps)
	assert.Equal(t, 16, text.FontSize)
}

func TestUpdateSelectedNilDeletes(t *testing.T) {
	model := newModel(t)
	docID := uuid.New()

	ann, err := model.Create(VariantComment, docID, 2, Point{})
	require.NoError(t, err)
	_, err = model.Select(ann.ID)
	require.NoError(t, err)

	result, err := model.UpdateSelected(nil)
	require.NoError(t, err)
	assert.Nil(t, result)

	assert.Nil(t, model.Selected())
	_, err = model.Find(ann.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, model.ForPage(docID, 2))
}

func TestUpdateSelectedWithoutSelection(t *testing.T) {
	model := newModel(t)

	text := "ignored"
	result, err := model.UpdateSelected(&CommentPatch{Text: &text})
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestApplySelectedDecodesAgainstSelection(t *testing.T) {
	model := newModel(t)

	hl, err := model.Create(VariantHighlight, uuid.New(), 1, Point{})
	require.NoError(t, err)
	text, err := model.Create(VariantText, uuid.New(), 1, Point{})
	require.NoError(t, err)

	_, err = model.Select(hl.ID)
	require.NoError(t, err)

	updated, err := model.ApplySelected([]byte(`{"opacity":0.5}`))
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 0.5, updated.Props.(*HighlightProps).Opacity)

	// The same payload against a text selection is a mismatch: the body is
	// interpreted against whatever is selected when it applies, not against
	// an earlier read of the selection.
	_, err = model.Select(text.ID)
	require.NoError(t, err)

	_, err = model.ApplySelected([]byte(`{"opacity":0.5}`))
	assert.ErrorIs(t, err, ErrVariantMismatch)

	current := model.Selected()
	require.NotNil(t, current)
	assert.Equal(t, 16, current.Props.(*TextProps).FontSize)
}

func TestApplySelectedNullDeletes(t *testing.T) {
	model := newModel(t)

	ann, err := model.Create(VariantComment, uuid.New(), 1, Point{})
	require.NoError(t, err)
	_, err = model.Select(ann.ID)
	require.NoError(t, err)

	result, err := model.ApplySelected([]byte("null"))
	require.NoError(t, err)
	assert.Nil(t, result)

	assert.Nil(t, model.Selected())
	_, err = model.Find(ann.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplySelectedWithoutSelection(t *testing.T) {
	model := newModel(t)

	result, err := model.ApplySelected([]byte(`{"text":"ignored"}`))
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestDeleteClearsSelection(t *testing.T) {
	model := newModel(t)

	ann, err := model.Create(VariantDraw, uuid.New(), 1, Point{})
	require.NoError(t, err)
	_, err = model.Select(ann.ID)
	require.NoError(t, err)

	model.Delete(ann.ID)
	assert.Nil(t, model.Selected())

	// Deleting an unknown id is a no-op.
	model.Delete(uuid.New())
}

func TestForPageFiltersAndOrders(t *testing.T) {
	model := newModel(t)
	docA := uuid.New()
	docB := uuid.New()

	first, err := model.Create(VariantText, docA, 1, Point{})
	require.NoError(t, err)
	_, err = model.Create(VariantRect, docA, 2, Point{})
	require.NoError(t, err)
	second, err := model.Create(VariantLine, docA, 1, Point{})
	require.NoError(t, err)
	_, err = model.Create(VariantText, docB, 1, Point{})
	require.NoError(t, err)

	page1 := model.ForPage(docA, 1)
	require.Len(t, page1, 2)
	assert.Equal(t, first.ID, page1[0].ID)
	assert.Equal(t, second.ID, page1[1].ID)

	assert.Len(t, model.ForDocument(docA), 3)
	assert.Len(t, model.ForDocument(docB), 1)
	assert.Empty(t, model.ForPage(docA, 9))
}

func TestClearDropsDocumentAnnotations(t *testing.T) {
	model := newModel(t)
	docA := uuid.New()
	docB := uuid.New()

	ann, err := model.Create(VariantText, docA, 1, Point{})
	require.NoError(t, err)
	_, err = model.Create(VariantText, docB, 1, Point{})
	require.NoError(t, err)
	_, err = model.Select(ann.ID)
	require.NoError(t, err)

	model.Clear(docA)

	assert.Empty(t, model.ForDocument(docA))
	assert.Len(t, model.ForDocument(docB), 1)
	assert.Nil(t, model.Selected())
}

func TestReturnedAnnotationsAreCopies(t *testing.T) {
	model := newModel(t)

	ann, err := model.Create(VariantText, uuid.New(), 1, Point{})
	require.NoError(t, err)

	// Mutating the returned copy never reaches the stored annotation.
	ann.Props.(*TextProps).Text = "tampered"

	stored, err := model.Find(ann.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Props.(*TextProps).Text)
}
