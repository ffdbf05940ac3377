package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"courseapp/internal/service"
)

// formImage wraps the multipart file part so callers can close it after the
// upload has been consumed.
type formImage struct {
	Attachment service.Attachment
	file       multipart.File
}

func (f *formImage) close() {
	f.file.Close()
}

// formAttachment extracts the "image" file part. Returns (nil, nil) when the
// part is absent so update handlers can treat the image as optional.
func formAttachment(r *http.Request) (*formImage, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	return &formImage{
		Attachment: service.Attachment{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		},
		file: file,
	}, nil
}

// optionalFormValue distinguishes an omitted form field from an empty one.
func optionalFormValue(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	if vs, ok := r.MultipartForm.Value[key]; ok && len(vs) > 0 {
		v := vs[0]
		return &v
	}
	return nil
}
