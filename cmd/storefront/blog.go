package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/mercadito/storefront/internal/api"
	"github.com/mercadito/storefront/internal/app"
)

func newBlogCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blog",
		Short: "Read and manage blog posts",
	}
	cmd.AddCommand(
		newBlogListCmd(a),
		newBlogShowCmd(a),
		newBlogCreateCmd(a),
		newBlogEditCmd(a),
		newBlogDeleteCmd(a),
	)
	return cmd
}

func newBlogListCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all blog posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			blogs, err := a.API.ListBlogs(cmd.Context())
			if err != nil {
				return err
			}
			for _, b := range blogs {
				fmt.Printf("%s  %s — %s (%s)\n", b.ID, b.CreatedAt.Format("2006-01-02"), b.Title, b.Author.Username)
			}
			return nil
		},
	}
}

func newBlogShowCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <blog-id>",
		Short: "Show one blog post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.API.GetBlog(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s\nby %s on %s\n\n%s\n", b.Title, b.Author.Username, b.CreatedAt.Format("2006-01-02"), b.Content)
			return nil
		},
	}
}

// blogParamsFromFlags assembles the API params, opening the image file when
// one was given. The returned closer is a no-op when there is no image.
func blogParamsFromFlags(title, content, imagePath string) (api.BlogParams, func(), error) {
	p := api.BlogParams{Title: title, Content: content}
	closeFn := func() {}
	if imagePath != "" {
		f, err := os.Open(imagePath)
		if err != nil {
			return p, closeFn, errors.Wrap(err, "open image")
		}
		p.Image = f
		p.ImageName = filepath.Base(imagePath)
		closeFn = func() { _ = f.Close() }
	}
	return p, closeFn, nil
}

func newBlogCreateCmd(a *app.App) *cobra.Command {
	var title, content, imagePath string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a new blog post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, closeFn, err := blogParamsFromFlags(title, content, imagePath)
			if err != nil {
				return err
			}
			defer closeFn()

			b, err := a.API.CreateBlog(cmd.Context(), p)
			if err != nil {
				return err
			}
			fmt.Printf("Published %q as %s.\n", b.Title, b.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "post title")
	cmd.Flags().StringVar(&content, "content", "", "post body")
	cmd.Flags().StringVar(&imagePath, "image", "", "path of the cover image")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newBlogEditCmd(a *app.App) *cobra.Command {
	var title, content, imagePath string
	cmd := &cobra.Command{
		Use:   "edit <blog-id>",
		Short: "Edit an existing blog post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, closeFn, err := blogParamsFromFlags(title, content, imagePath)
			if err != nil {
				return err
			}
			defer closeFn()

			b, err := a.API.UpdateBlog(cmd.Context(), args[0], p)
			if err != nil {
				return err
			}
			fmt.Printf("Updated %q.\n", b.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "post title")
	cmd.Flags().StringVar(&content, "content", "", "post body")
	cmd.Flags().StringVar(&imagePath, "image", "", "path of the cover image")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newBlogDeleteCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <blog-id>",
		Short: "Delete a blog post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.API.DeleteBlog(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}
}
