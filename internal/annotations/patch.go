package annotations

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Patch is the sealed set of per-variant partial updates. Pointer fields
// distinguish "leave unchanged" from "set to zero"; a patch only applies to
// the variants whose property schema it mirrors.
type Patch interface {
	appliesTo(v Variant) bool
}

// TextPatch updates a text annotation.
type TextPatch struct {
	Text       *string `json:"text,omitempty"`
	FontSize   *int    `json:"font_size,omitempty"`
	FontFamily *string `json:"font_family,omitempty"`
	Color      *string `json:"color,omitempty"`
	Bold       *bool   `json:"bold,omitempty"`
	Italic     *bool   `json:"italic,omitempty"`
	Underline  *bool   `json:"underline,omitempty"`
}

func (TextPatch) appliesTo(v Variant) bool { return v == VariantText }

// ShapePatch updates a rect or circle annotation. Setting Fill to the empty
// string removes the fill and its opacity.
type ShapePatch struct {
	Color       *string  `json:"color,omitempty"`
	BorderWidth *int     `json:"border_width,omitempty"`
	Fill        *string  `json:"fill,omitempty"`
	FillOpacity *float64 `json:"fill_opacity,omitempty"`
}

func (ShapePatch) appliesTo(v Variant) bool { return v == VariantRect || v == VariantCircle }

// LinePatch updates a line annotation.
type LinePatch struct {
	Color *string `json:"color,omitempty"`
	Width *int    `json:"width,omitempty"`
	End   *Point  `json:"end,omitempty"`
}

func (LinePatch) appliesTo(v Variant) bool { return v == VariantLine }

// HighlightPatch updates a highlight annotation.
type HighlightPatch struct {
	Color   *string  `json:"color,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`
	Region  *Region  `json:"region,omitempty"`
}

func (HighlightPatch) appliesTo(v Variant) bool { return v == VariantHighlight }

// ImagePatch updates an image annotation.
type ImagePatch struct {
	Width  *int    `json:"width,omitempty"`
	Height *int    `json:"height,omitempty"`
	Source *string `json:"source,omitempty"`
}

func (ImagePatch) appliesTo(v Variant) bool { return v == VariantImage }

// CommentPatch updates a comment annotation.
type CommentPatch struct {
	Text *string `json:"text,omitempty"`
}

func (CommentPatch) appliesTo(v Variant) bool { return v == VariantComment }

// DrawPatch updates a freehand stroke annotation. A non-nil Points replaces
// the whole stroke.
type DrawPatch struct {
	Color  *string `json:"color,omitempty"`
	Width  *int    `json:"width,omitempty"`
	Points []Point `json:"points,omitempty"`
}

func (DrawPatch) appliesTo(v Variant) bool { return v == VariantDraw }

// apply merges a patch into the matching property struct. The caller has
// already verified the patch applies to the annotation's variant.
func apply(props Properties, patch Patch) error {
	switch p := patch.(type) {
	case *TextPatch:
		t, ok := props.(*TextProps)
		if !ok {
			return mismatch(props, patch)
		}
		setString(&t.Text, p.Text)
		setInt(&t.FontSize, p.FontSize)
		setString(&t.FontFamily, p.FontFamily)
		setString(&t.Color, p.Color)
		setBool(&t.Bold, p.Bold)
		setBool(&t.Italic, p.Italic)
		setBool(&t.Underline, p.Underline)
	case *ShapePatch:
		s, ok := props.(*ShapeProps)
		if !ok {
			return mismatch(props, patch)
		}
		setString(&s.Color, p.Color)
		setInt(&s.BorderWidth, p.BorderWidth)
		if p.Fill != nil {
			if *p.Fill == "" {
				s.Fill = nil
				s.FillOpacity = nil
			} else {
				fill := *p.Fill
				s.Fill = &fill
				if s.FillOpacity == nil {
					opacity := 1.0
					s.FillOpacity = &opacity
				}
			}
		}
		if p.FillOpacity != nil && s.Fill != nil {
			opacity := *p.FillOpacity
			s.FillOpacity = &opacity
		}
	case *LinePatch:
		l, ok := props.(*LineProps)
		if !ok {
			return mismatch(props, patch)
		}
		setString(&l.Color, p.Color)
		setInt(&l.Width, p.Width)
		if p.End != nil {
			l.End = *p.End
		}
	case *HighlightPatch:
		h, ok := props.(*HighlightProps)
		if !ok {
			return mismatch(props, patch)
		}
		setString(&h.Color, p.Color)
		if p.Opacity != nil {
			h.Opacity = *p.Opacity
		}
		if p.Region != nil {
			h.Region = *p.Region
		}
	case *ImagePatch:
		i, ok := props.(*ImageProps)
		if !ok {
			return mismatch(props, patch)
		}
		setInt(&i.Width, p.Width)
		setInt(&i.Height, p.Height)
		setString(&i.Source, p.Source)
	case *CommentPatch:
		c, ok := props.(*CommentProps)
		if !ok {
			return mismatch(props, patch)
		}
		setString(&c.Text, p.Text)
	case *DrawPatch:
		d, ok := props.(*DrawProps)
		if !ok {
			return mismatch(props, patch)
		}
		setString(&d.Color, p.Color)
		setInt(&d.Width, p.Width)
		if p.Points != nil {
			d.Points = append([]Point(nil), p.Points...)
		}
	default:
		return fmt.Errorf("%w: unknown patch %T", ErrVariantMismatch, patch)
	}
	return nil
}

func mismatch(props Properties, patch Patch) error {
	return fmt.Errorf("%w: patch %T against properties %T", ErrVariantMismatch, patch, props)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// decodePatch parses body into the patch type of the given variant. Unknown
// fields are rejected so a patch never smuggles another variant's fields in.
func decodePatch(variant Variant, body []byte) (Patch, error) {
	var patch Patch
	switch variant {
	case VariantText:
		patch = &TextPatch{}
	case VariantRect, VariantCircle:
		patch = &ShapePatch{}
	case VariantLine:
		patch = &LinePatch{}
	case VariantHighlight:
		patch = &HighlightPatch{}
	case VariantImage:
		patch = &ImagePatch{}
	case VariantComment:
		patch = &CommentPatch{}
	case VariantDraw:
		patch = &DrawPatch{}
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidVariant, variant)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(patch); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVariantMismatch, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing content", ErrVariantMismatch)
	}
	return patch, nil
}

func isJSONNull(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
