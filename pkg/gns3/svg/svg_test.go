package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShapes(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "rectangle",
			got:  DefaultRectangle().String(),
			want: `<svg height="100" width="200"><rect fill="#ffffff" fill-opacity="1.0" height="100" stroke="#000000" stroke-width="2" width="200" /></svg>`,
		},
		{
			name: "ellipse",
			got:  DefaultEllipse().String(),
			want: `<svg height="200.0" width="200.0"><ellipse cx="100" cy="100" fill="#ffffff" fill-opacity="1.0" rx="100" ry="100" stroke="#000000" stroke-width="2" /></svg>`,
		},
		{
			name: "line",
			got:  DefaultLine().String(),
			want: `<svg height="0" width="200"><line stroke="#000000" stroke-width="2" x1="0" x2="200" y1="0" y2="0" /></svg>`,
		},
		{
			name: "translucent rectangle",
			got:  Rectangle{Height: 50, Width: 50, Fill: "#ff0000", FillOpacity: 0.5, Stroke: "#000000", StrokeWidth: 1}.String(),
			want: `<svg height="50" width="50"><rect fill="#ff0000" fill-opacity="0.5" height="50" stroke="#000000" stroke-width="1" width="50" /></svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestNum(t *testing.T) {
	assert.Equal(t, "1.0", num(1))
	assert.Equal(t, "0.5", num(0.5))
	assert.Equal(t, "200.0", num(200))
	assert.Equal(t, "0.25", num(0.25))
}

func TestParsedCoordinates(t *testing.T) {
	assert.Equal(t, 400, ParsedX(2, 200))
	assert.Equal(t, 0, ParsedX(0, 200))
	assert.Equal(t, -300, ParsedY(3, 100))
	assert.Equal(t, 100, ParsedY(-1, 100))
}
