package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"catalogo-tienda/models"
)

func TestResolveImage(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
		ok     bool
	}{
		{name: "bare url", values: []string{"https://cdn.tienda.co/p/1.jpg"}, want: "https://cdn.tienda.co/p/1.jpg", ok: true},
		{name: "trims spaces", values: []string{"  http://img.co/a.png \n"}, want: "http://img.co/a.png", ok: true},
		{name: "data uri", values: []string{"data:image/png;base64,iVBORw0KGgo="}, want: "data:image/png;base64,iVBORw0KGgo=", ok: true},
		{name: "non image data uri", values: []string{"data:text/plain,hola"}},
		{name: "json array string", values: []string{`["", "https://a.co/1.jpg", "https://a.co/2.jpg"]`}, want: "https://a.co/1.jpg", ok: true},
		{name: "json array with junk", values: []string{`[null, 3, "nope", "/images/7.jpg"]`}, want: "/images/7.jpg", ok: true},
		{name: "broken json array", values: []string{`["https://a.co/1.jpg"`}},
		{name: "native array first valid wins", values: []string{"", "ftp://x.co/a.jpg", "https://b.co/b.jpg", "https://c.co/c.jpg"}, want: "https://b.co/b.jpg", ok: true},
		{name: "root relative", values: []string{"/admin/images/12"}, want: "/admin/images/12", ok: true},
		{name: "protocol relative rejected", values: []string{"//cdn.co/a.jpg"}},
		{name: "drive reference", values: []string{"drive://1AbC"}, want: "drive://1AbC", ok: true},
		{name: "empty drive reference", values: []string{"drive://"}},
		{name: "url without host", values: []string{"https:///a.jpg"}},
		{name: "plain words", values: []string{"sin imagen"}},
		{name: "nothing", values: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveImage(models.Product{ID: "p", Image: models.NewImageRef(tt.values...)})
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDriveFileID(t *testing.T) {
	tests := []struct {
		src  string
		want string
		ok   bool
	}{
		{src: "drive://1AbC", want: "1AbC", ok: true},
		{src: "https://drive.google.com/uc?id=1AbC&export=download", want: "1AbC", ok: true},
		{src: "https://drive.google.com/file/d/1AbC/view?usp=sharing", want: "1AbC", ok: true},
		{src: "https://docs.google.com/uc?id=9Zz", want: "9Zz", ok: true},
		{src: "https://drive.google.com/drive/folders/xyz"},
		{src: "https://cdn.tienda.co/uc?id=1AbC"},
		{src: "/images/1"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, ok := DriveFileID(tt.src)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
