package storage

import "testing"

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			"nested public id with version segment",
			"https://res.cloudinary.com/demo/image/upload/v1724900000/properties/7/1724900000_0.jpg",
			"properties/7/1724900000_0",
		},
		{
			"folder prefix stays part of the public id",
			"https://res.cloudinary.com/demo/image/upload/v1/pg-images/properties/7/1724900000_0.png",
			"pg-images/properties/7/1724900000_0",
		},
		{
			"no version segment",
			"https://res.cloudinary.com/demo/image/upload/properties/7/photo.jpg",
			"properties/7/photo",
		},
		{
			"folder starting with v is not a version",
			"https://res.cloudinary.com/demo/image/upload/vacation/photo.jpg",
			"vacation/photo",
		},
		{
			"no extension",
			"https://res.cloudinary.com/demo/image/upload/v99/properties/7/photo",
			"properties/7/photo",
		},
		{
			"not an upload url",
			"https://example.com/somewhere/photo.jpg",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := publicIDFromURL(tt.url); got != tt.want {
				t.Fatalf("publicIDFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
