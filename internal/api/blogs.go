package api

import (
	"context"
	"io"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/mercadito/storefront/internal/domain/blog"
)

// ListBlogs retrieves all published blog posts.
func (c *Client) ListBlogs(ctx context.Context) ([]blog.Blog, error) {
	var out struct {
		Blogs []blog.Blog `json:"blogs"`
	}
	if err := c.do(ctx, http.MethodGet, "/blogs", nil, &out); err != nil {
		return nil, errors.Wrap(err, "list blogs")
	}
	return out.Blogs, nil
}

// GetBlog retrieves a single blog post by id.
func (c *Client) GetBlog(ctx context.Context, id string) (blog.Blog, error) {
	var out struct {
		Blog blog.Blog `json:"blog"`
	}
	if err := c.do(ctx, http.MethodGet, "/blogs/"+id, nil, &out); err != nil {
		return blog.Blog{}, errors.Wrapf(err, "get blog %q", id)
	}
	return out.Blog, nil
}

// BlogParams is the content of a blog post for create and update calls.
// The optional image travels as the blogImage multipart field.
type BlogParams struct {
	Title     string
	Content   string
	ImageName string
	Image     io.Reader
}

func (p BlogParams) fields() map[string]string {
	return map[string]string{
		"title":   p.Title,
		"content": p.Content,
	}
}

func (p BlogParams) files() []filePart {
	if p.Image == nil {
		return nil
	}
	return []filePart{{Field: "blogImage", Filename: p.ImageName, Reader: p.Image}}
}

// CreateBlog publishes a new blog post.
func (c *Client) CreateBlog(ctx context.Context, p BlogParams) (blog.Blog, error) {
	var out struct {
		Blog blog.Blog `json:"blog"`
	}
	if err := c.doMultipart(ctx, http.MethodPost, "/blogs", p.fields(), p.files(), &out); err != nil {
		return blog.Blog{}, errors.Wrap(err, "create blog")
	}
	return out.Blog, nil
}

// UpdateBlog edits an existing blog post. A nil image leaves the stored
// image untouched.
func (c *Client) UpdateBlog(ctx context.Context, id string, p BlogParams) (blog.Blog, error) {
	var out struct {
		Blog blog.Blog `json:"blog"`
	}
	if err := c.doMultipart(ctx, http.MethodPatch, "/blogs/"+id, p.fields(), p.files(), &out); err != nil {
		return blog.Blog{}, errors.Wrapf(err, "update blog %q", id)
	}
	return out.Blog, nil
}

// DeleteBlog removes a blog post.
func (c *Client) DeleteBlog(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/blogs/"+id, nil, nil); err != nil {
		return errors.Wrapf(err, "delete blog %q", id)
	}
	return nil
}
