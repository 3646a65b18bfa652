// Package annotations implements the typed overlay model for document pages:
// a closed set of annotation variants, each with its own property schema,
// and a single-selection editing workflow.
package annotations

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Variant identifies an annotation kind. The set is closed: every annotation
// carries exactly the property schema of its variant, and updates never
// change the variant.
type Variant string

// Annotation variants.
const (
	VariantText      Variant = "text"
	VariantRect      Variant = "rect"
	VariantCircle    Variant = "circle"
	VariantLine      Variant = "line"
	VariantHighlight Variant = "highlight"
	VariantImage     Variant = "image"
	VariantComment   Variant = "comment"
	VariantDraw      Variant = "draw"
)

// ParseVariant converts a string to a Variant, rejecting unknown kinds.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case VariantText, VariantRect, VariantCircle, VariantLine,
		VariantHighlight, VariantImage, VariantComment, VariantDraw:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidVariant, s)
	}
}

// Point is a position on a page, in page coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Region is a rectangular area on a page, anchored at its top-left corner.
type Region struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Properties is the sealed set of per-variant property schemas. Each
// implementation reports the variants it is legal for, which makes the
// "legal field set per variant" invariant checkable at the type level.
type Properties interface {
	appliesTo(v Variant) bool
}

// TextProps are the properties of a text annotation.
type TextProps struct {
	Text       string `json:"text"`
	FontSize   int    `json:"font_size"`
	FontFamily string `json:"font_family"`
	Color      string `json:"color"`
	Bold       bool   `json:"bold"`
	Italic     bool   `json:"italic"`
	Underline  bool   `json:"underline"`
}

func (TextProps) appliesTo(v Variant) bool { return v == VariantText }

// ShapeProps are the shared properties of rect and circle annotations.
// Fill is optional; FillOpacity is meaningful only while a fill is set.
type ShapeProps struct {
	Color       string   `json:"color"`
	BorderWidth int      `json:"border_width"`
	Fill        *string  `json:"fill,omitempty"`
	FillOpacity *float64 `json:"fill_opacity,omitempty"`
}

func (ShapeProps) appliesTo(v Variant) bool { return v == VariantRect || v == VariantCircle }

// LineProps are the properties of a line annotation. The annotation position
// is the first endpoint; End is the second.
type LineProps struct {
	Color string `json:"color"`
	Width int    `json:"width"`
	End   Point  `json:"end"`
}

func (LineProps) appliesTo(v Variant) bool { return v == VariantLine }

// HighlightProps are the properties of a highlight annotation bound to a
// text region.
type HighlightProps struct {
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
	Region  Region  `json:"region"`
}

func (HighlightProps) appliesTo(v Variant) bool { return v == VariantHighlight }

// ImageProps are the properties of an image annotation.
type ImageProps struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Source string `json:"source"`
}

func (ImageProps) appliesTo(v Variant) bool { return v == VariantImage }

// CommentProps are the properties of a comment annotation anchored at the
// annotation position.
type CommentProps struct {
	Text string `json:"text"`
}

func (CommentProps) appliesTo(v Variant) bool { return v == VariantComment }

// DrawProps are the properties of a freehand stroke annotation.
type DrawProps struct {
	Color  string  `json:"color"`
	Width  int     `json:"width"`
	Points []Point `json:"points"`
}

func (DrawProps) appliesTo(v Variant) bool { return v == VariantDraw }

// defaultProps returns the tool defaults for a variant.
func defaultProps(v Variant) Properties {
	switch v {
	case VariantText:
		return &TextProps{FontSize: 16, FontFamily: "Arial", Color: "#000000"}
	case VariantRect, VariantCircle:
		return &ShapeProps{Color: "#1976d2", BorderWidth: 2}
	case VariantLine:
		return &LineProps{Color: "#1976d2", Width: 2}
	case VariantHighlight:
		return &HighlightProps{Color: "#ffff00", Opacity: 0.3}
	case VariantImage:
		return &ImageProps{Width: 200, Height: 150}
	case VariantComment:
		return &CommentProps{}
	case VariantDraw:
		return &DrawProps{Color: "#d32f2f", Width: 3}
	default:
		return nil
	}
}

// Annotation is one typed overlay object positioned on a document page.
type Annotation struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	Variant    Variant
	Page       int
	Position   Point
	Props      Properties
}

type annotationEnvelope struct {
	ID         uuid.UUID       `json:"id"`
	DocumentID uuid.UUID       `json:"document_id"`
	Type       Variant         `json:"type"`
	Page       int             `json:"page"`
	Position   Point           `json:"position"`
	Properties json.RawMessage `json:"properties"`
}

// MarshalJSON serializes the annotation with its variant tag and the
// variant-specific property object.
func (a Annotation) MarshalJSON() ([]byte, error) {
	props, err := json.Marshal(a.Props)
	if err != nil {
		return nil, err
	}

	return json.Marshal(annotationEnvelope{
		ID:         a.ID,
		DocumentID: a.DocumentID,
		Type:       a.Variant,
		Page:       a.Page,
		Position:   a.Position,
		Properties: props,
	})
}

// UnmarshalJSON decodes the annotation, selecting the property schema from
// the variant tag.
func (a *Annotation) UnmarshalJSON(data []byte) error {
	var env annotationEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	variant, err := ParseVariant(string(env.Type))
	if err != nil {
		return err
	}

	props := defaultProps(variant)
	if len(env.Properties) > 0 {
		if err := json.Unmarshal(env.Properties, props); err != nil {
			return err
		}
	}

	a.ID = env.ID
	a.DocumentID = env.DocumentID
	a.Variant = variant
	a.Page = env.Page
	a.Position = env.Position
	a.Props = props
	return nil
}

// clone returns a deep copy safe to hand outside the model.
func (a *Annotation) clone() *Annotation {
	out := *a

	switch p := a.Props.(type) {
	case *TextProps:
		cp := *p
		out.Props = &cp
	case *ShapeProps:
		cp := *p
		if p.Fill != nil {
			fill := *p.Fill
			cp.Fill = &fill
		}
		if p.FillOpacity != nil {
			opacity := *p.FillOpacity
			cp.FillOpacity = &opacity
		}
		out.Props = &cp
	case *LineProps:
		cp := *p
		out.Props = &cp
	case *HighlightProps:
		cp := *p
		out.Props = &cp
	case *ImageProps:
		cp := *p
		out.Props = &cp
	case *CommentProps:
		cp := *p
		out.Props = &cp
	case *DrawProps:
		cp := *p
		cp.Points = append([]Point(nil), p.Points...)
		out.Props = &cp
	}

	return &out
}
