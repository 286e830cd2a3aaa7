package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Request describes one call relative to the API base path. At most one of
// JSON and Form is set; neither means an empty body.
type Request struct {
	Method string
	Path   string
	JSON   any
	Form   *Form
}

func Get(path string) *Request {
	return &Request{Method: http.MethodGet, Path: path}
}

func Post(path string, body any) *Request {
	return &Request{Method: http.MethodPost, Path: path, JSON: body}
}

func Put(path string, body any) *Request {
	return &Request{Method: http.MethodPut, Path: path, JSON: body}
}

// PostForm builds a multipart/form-data POST.
func PostForm(path string, form *Form) *Request {
	return &Request{Method: http.MethodPost, Path: path, Form: form}
}

// Form is an ordered multipart payload.
type Form struct {
	Fields []FormField
	Files  []FormFile
}

type FormField struct {
	Name  string
	Value string
}

type FormFile struct {
	Field    string
	FileName string
	Content  io.Reader
}

func (f *Form) Add(name, value string) {
	f.Fields = append(f.Fields, FormField{Name: name, Value: value})
}

func (f *Form) AddFile(field, fileName string, content io.Reader) {
	f.Files = append(f.Files, FormFile{Field: field, FileName: fileName, Content: content})
}

// encode renders the body and returns it with its content type.
func (r *Request) encode() (io.Reader, string, error) {
	switch {
	case r.Form != nil:
		return r.Form.encode()
	case r.JSON != nil:
		b, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, "", fmt.Errorf("encode json: %w", err)
		}
		return bytes.NewReader(b), "application/json", nil
	default:
		return nil, "", nil
	}
}

func (f *Form) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range f.Fields {
		if err := w.WriteField(field.Name, field.Value); err != nil {
			return nil, "", fmt.Errorf("encode form field %s: %w", field.Name, err)
		}
	}
	for _, file := range f.Files {
		part, err := w.CreateFormFile(file.Field, file.FileName)
		if err != nil {
			return nil, "", fmt.Errorf("encode form file %s: %w", file.Field, err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, "", fmt.Errorf("read form file %s: %w", file.Field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("encode form: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
