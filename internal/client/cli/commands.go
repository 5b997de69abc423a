package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	name, err := GetSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.api.Register(ctx, email, string(password), name)
	if err != nil {
		printlnFn("Registration failed: " + err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Registered as %s (id %d). You can now login.", user.Email, user.ID))
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.Login(ctx, email, string(password)); err != nil {
		printlnFn("Login failed: " + err.Error())
		return err
	}

	id, err := a.api.Me(ctx)
	if err != nil {
		printlnFn("Login failed: " + err.Error())
		return err
	}
	a.userName = id.Name

	printlnFn("Logged in as " + id.Email)
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	id, err := a.api.Me(ctx)
	if err != nil {
		printlnFn("Error: " + err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("id: %d, email: %s, name: %s", id.UserID, id.Email, id.Name))
	return nil
}

func (a *App) List(ctx context.Context) error {
	posts, err := a.api.ListPosts(ctx)
	if err != nil {
		printlnFn("Error: " + err.Error())
		return err
	}
	if len(posts) == 0 {
		printlnFn("No posts yet.")
		return nil
	}
	for _, p := range posts {
		printlnFn(fmt.Sprintf("[%d] %s (author %d)", p.ID, p.Title, p.AuthorID))
	}
	return nil
}

func (a *App) Show(ctx context.Context) error {
	id, err := a.promptID()
	if err != nil {
		return err
	}

	post, err := a.api.GetPost(ctx, id)
	if err != nil {
		printlnFn("Error: " + err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("[%d] %s (author %d)\n\n%s", post.ID, post.Title, post.AuthorID, post.Content))
	return nil
}

func (a *App) Add(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Enter content", os.Stdout)
	if err != nil {
		return err
	}

	post, err := a.api.CreatePost(ctx, title, content)
	if err != nil {
		printlnFn("Error: " + err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Created post %d", post.ID))
	return nil
}

func (a *App) Edit(ctx context.Context) error {
	id, err := a.promptID()
	if err != nil {
		return err
	}

	title, err := GetSimpleText(a.reader, "New title (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "New content (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	patch := map[string]string{}
	if title != "" {
		patch["title"] = title
	}
	if content != "" {
		patch["content"] = content
	}
	if len(patch) == 0 {
		printlnFn("Nothing to change.")
		return nil
	}

	post, err := a.api.UpdatePost(ctx, id, patch)
	if err != nil {
		printlnFn("Error: " + err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Updated post %d", post.ID))
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	id, err := a.promptID()
	if err != nil {
		return err
	}

	if err := a.api.DeletePost(ctx, id); err != nil {
		printlnFn("Error: " + err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Deleted post %d", id))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.api.ClearToken()
	a.userName = ""
	printlnFn("Logged out.")
	return nil
}

func (a *App) promptID() (int64, error) {
	raw, err := GetSimpleText(a.reader, "Enter post id", os.Stdout)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		printlnFn("Invalid id: " + raw)
		return 0, err
	}
	return id, nil
}
