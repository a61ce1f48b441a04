package subtitles

import (
	"fmt"
	"strings"
	"time"

	"github.com/Dreiko98/clipforge/internal/types"
)

// Style describes how burned-in subtitles look. Colors are #RRGGBB hex and
// converted to the BGR order ASS expects.
type Style struct {
	FontFamily      string
	FontSize        int
	FontColor       string
	Bold            bool
	Italic          bool
	OutlineColor    string
	OutlineWidth    int
	ShadowColor     string
	ShadowDepth     int
	BackgroundColor string
	Alignment       int // ASS alignment code, 5 = middle-center
	MarginV         int
}

// DefaultStyle is tuned for a 1080x1920 vertical canvas with the subtitle
// band sitting on the panel divider.
func DefaultStyle() Style {
	return Style{
		FontFamily:      "Arial",
		FontSize:        58,
		FontColor:       "#FFFFFF",
		Bold:            true,
		Italic:          true,
		OutlineColor:    "#000000",
		OutlineWidth:    5,
		ShadowColor:     "#404040",
		ShadowDepth:     3,
		BackgroundColor: "#80000000",
		Alignment:       5,
		MarginV:         880,
	}
}

// SafeZone is the screen region reserved for subtitles, in canvas pixels.
type SafeZone struct {
	X      int
	Y      int
	Width  int
	Height int
}

// OverrideTag positions events at the zone center with an absolute
// \pos tag, overriding style alignment and margins.
func (z SafeZone) OverrideTag() string {
	cx := z.X + z.Width/2
	cy := z.Y + 40
	if z.Height > 0 {
		cy = z.Y + z.Height/2
	}
	return fmt.Sprintf(`{\an5\pos(%d,%d)}`, cx, cy)
}

// RenderASS renders a complete ASS document for the cue list. The
// override tag, when non-empty, is prepended to every event.
func RenderASS(cues []types.SubtitleCue, style Style, override string) string {
	var b strings.Builder
	b.WriteString(style.header())
	for _, cue := range cues {
		b.WriteString(eventLine(cue, override))
		b.WriteByte('\n')
	}
	return b.String()
}

func (s Style) header() string {
	bold := 0
	if s.Bold {
		bold = -1
	}
	italic := 0
	if s.Italic {
		italic = -1
	}
	back := s.BackgroundColor
	if back == "" {
		back = "#80000000"
	}

	return "[Script Info]\n" +
		"Title: Styled Subtitles\n" +
		"ScriptType: v4.00+\n\n" +
		"[V4+ Styles]\n" +
		"Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n" +
		fmt.Sprintf("Style: Default,%s,%d,%s,%s,%s,%s,%d,%d,0,0,100,100,2,0,1,%d,%d,%d,40,40,%d,1\n\n",
			s.FontFamily, s.FontSize,
			colorToASS(s.FontColor), colorToASS(s.ShadowColor),
			colorToASS(s.OutlineColor), colorToASS(back),
			bold, italic, s.OutlineWidth, s.ShadowDepth, s.Alignment, s.MarginV) +
		"[Events]\n" +
		"Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n"
}

func eventLine(cue types.SubtitleCue, override string) string {
	text := sanitizeASS(cue.Text)
	if override != "" {
		text = override + text
	}
	return fmt.Sprintf("Dialogue: 0,%s,%s,Default,,0,0,0,,%s", assTime(cue.Start), assTime(cue.End), text)
}

// colorToASS converts #RRGGBB (optionally with a leading alpha byte) to
// the &HBBGGRR form ASS uses.
func colorToASS(hex string) string {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 8 {
		// drop alpha, keep color bytes
		hex = hex[2:]
	}
	if len(hex) != 6 {
		return "&HFFFFFF"
	}
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return "&HFFFFFF"
	}
	return fmt.Sprintf("&H%02X%02X%02X", b, g, r)
}

func assTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d / time.Hour)
	d -= time.Duration(h) * time.Hour
	m := int(d / time.Minute)
	d -= time.Duration(m) * time.Minute
	s := int(d / time.Second)
	d -= time.Duration(s) * time.Second
	cs := int(d / (10 * time.Millisecond))
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, cs)
}

func sanitizeASS(text string) string {
	text = strings.ReplaceAll(text, "{", "")
	text = strings.ReplaceAll(text, "}", "")
	text = strings.ReplaceAll(text, "\\", "\\\\")
	text = strings.ReplaceAll(text, "\n", "\\N")
	return strings.TrimSpace(text)
}
