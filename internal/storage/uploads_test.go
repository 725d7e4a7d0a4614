package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "photo.png", "photo.png"},
		{"spaces become underscores", "my field photo.png", "my_field_photo.png"},
		{"multiple spaces collapse", "a   b.png", "a_b.png"},
		{"path traversal stripped", "../../etc/passwd", "etc_passwd"},
		{"windows separators stripped", "..\\..\\site.png", "site.png"},
		{"absolute path stripped", "/var/www/shot.jpg", "var_www_shot.jpg"},
		{"unsafe runes dropped", "ph@oto!(1).png", "photo1.png"},
		{"hidden file unveiled", ".env", "env"},
		{"dots only", "...", ""},
		{"empty", "", ""},
		{"keeps case and digits", "Pin42_site-B.JPG", "Pin42_site-B.JPG"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestAllowedFile(t *testing.T) {
	assert.True(t, AllowedFile("a.png"))
	assert.True(t, AllowedFile("a.jpg"))
	assert.True(t, AllowedFile("a.jpeg"))
	assert.True(t, AllowedFile("a.gif"))
	assert.True(t, AllowedFile("UPPER.PNG"), "extension check is case-insensitive")
	assert.False(t, AllowedFile("a.exe"))
	assert.False(t, AllowedFile("a.png.sh"))
	assert.False(t, AllowedFile("noextension"))
	assert.False(t, AllowedFile(""))
}
