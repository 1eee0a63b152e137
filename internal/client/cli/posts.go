package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/postkeeper/internal/client/posts"
	"github.com/dmitrijs2005/postkeeper/internal/common"
)

const timeLayout = "2006-01-02 15:04:05"

func printPost(p posts.Post) {
	heading(fmt.Sprintf("[%s] %s", p.ID, p.Title))
	if p.Content != "" {
		printlnFn(p.Content)
	}
	muted("created %s, updated %s", p.CreatedAt.Local().Format(timeLayout), p.UpdatedAt.Local().Format(timeLayout))
}

func (a *App) List(ctx context.Context) error {
	st := a.store.Snapshot()
	if len(st.Posts) == 0 {
		muted("No posts yet. Use 'add' to create one or 'sync' to pull.")
		return nil
	}
	for _, p := range st.Posts {
		printPost(p)
	}
	return nil
}

func (a *App) Add(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}

	if title == "" || content == "" {
		err := fmt.Errorf("%w: please fill in both title and content", common.ErrValidation)
		failure(err)
		return err
	}

	p, err := a.posts.Create(ctx, title, content)
	if err != nil {
		failure(err)
		return err
	}

	success("Post %s created and pushed", p.ID)
	return nil
}

// Update edits the post named by args[0] (or asked for). An empty answer
// keeps the current title or content.
func (a *App) Update(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Enter post id to update")
	if err != nil {
		return err
	}

	current, ok := a.store.Snapshot().Find(id)
	if !ok {
		err := fmt.Errorf("post %s: %w", id, common.ErrNotFound)
		failure(err)
		return err
	}

	title, err := GetSimpleText(a.reader, fmt.Sprintf("Title [%s]", current.Title), a.out)
	if err != nil {
		return err
	}
	if title == "" {
		title = current.Title
	}

	content, err := GetMultiline(a.reader, "Content (empty keeps the current one)", a.out)
	if err != nil {
		return err
	}
	if content == "" {
		content = current.Content
	}

	if _, err := a.posts.Update(ctx, id, title, content); err != nil {
		failure(err)
		return err
	}

	success("Post %s updated", id)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Enter post id to delete")
	if err != nil {
		return err
	}

	if err := a.posts.Delete(ctx, id); err != nil {
		failure(err)
		return err
	}

	success("Post %s deleted", id)
	return nil
}

func (a *App) Sync(ctx context.Context, args []string) error {
	key := ""
	if len(args) > 0 {
		key = args[0]
	}

	pulled, err := a.posts.Pull(ctx, key)
	if err != nil {
		failure(err)
		return err
	}

	success("Synced %d posts", len(pulled))
	return nil
}

func (a *App) Save(ctx context.Context) error {
	key, err := a.posts.Push(ctx)
	if err != nil {
		failure(err)
		return err
	}

	success("Posts saved under key %s", key)
	return nil
}

func (a *App) Load(ctx context.Context, args []string) error {
	p, ok, err := a.posts.LoadRemotePost(ctx, args[0])
	if err != nil {
		failure(err)
		return err
	}
	if !ok {
		warning("Nothing stored under %s", args[0])
		return nil
	}

	printPost(p)
	return nil
}

func (a *App) Clear(ctx context.Context) error {
	a.store.ClearPosts()
	success("Local posts cleared")
	return nil
}

func (a *App) Status(ctx context.Context) error {
	st := a.store.Snapshot()
	info("%d posts, loading: %t", len(st.Posts), st.IsLoading)
	if st.Error != nil {
		failure(errors.New(*st.Error))
	}
	return nil
}

func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	v, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	v = strings.TrimSpace(v)
	if v == "" {
		err := fmt.Errorf("%w: id is required", common.ErrValidation)
		failure(err)
		return "", err
	}
	return v, nil
}
