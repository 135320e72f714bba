// todoctl is a small CLI over the task synchronization engine. It
// talks to the todosync API with a bearer token, or to a local task
// document with -local.
//
// Usage:
//
//	todoctl [-local FILE] list
//	todoctl [-local FILE] add TITLE [-desc TEXT] [-due RFC3339]
//	todoctl [-local FILE] edit ID [-title TEXT] [-desc TEXT] [-due RFC3339]
//	todoctl [-local FILE] done ID
//	todoctl [-local FILE] rm ID
//	todoctl [-local FILE] export [FILE]
//	todoctl [-local FILE] import FILE [-merge]
//
// Remote mode reads TODOSYNC_API_URL and TODOSYNC_TOKEN from the
// environment.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"todosync/client"
	"todosync/domain/apperr"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	global := flag.NewFlagSet("todoctl", flag.ContinueOnError)
	localPath := global.String("local", "", "use a local task document instead of the API")
	if err := global.Parse(args); err != nil {
		return 2
	}

	rest := global.Args()
	if len(rest) == 0 {
		fmt.Fprintln(os.Stderr, "usage: todoctl [-local FILE] <list|add|edit|done|rm|export|import> ...")
		return 2
	}

	store, err := buildStore(*localPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "todoctl:", err)
		return 1
	}

	engine := client.NewEngine(store)
	ctx := context.Background()

	if err := dispatch(ctx, engine, rest[0], rest[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "todoctl:", err)
		switch {
		case errors.Is(err, apperr.ErrValidation):
			return 2
		case errors.Is(err, apperr.ErrNotFound):
			return 3
		case errors.Is(err, apperr.ErrUnauthorized):
			return 4
		default:
			return 1
		}
	}
	return 0
}

func buildStore(localPath string) (client.Store, error) {
	if localPath != "" {
		return client.OpenFileStore(localPath)
	}

	apiURL := os.Getenv("TODOSYNC_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}
	token := os.Getenv("TODOSYNC_TOKEN")
	if token == "" {
		return nil, errors.New("TODOSYNC_TOKEN is not set (or pass -local FILE)")
	}

	return client.NewRemote(apiURL, func(ctx context.Context) (string, error) {
		return token, nil
	}), nil
}

func dispatch(ctx context.Context, engine *client.Engine, command string, args []string) error {
	switch command {
	case "list":
		return cmdList(ctx, engine)
	case "add":
		return cmdAdd(ctx, engine, args)
	case "edit":
		return cmdEdit(ctx, engine, args)
	case "done":
		return cmdToggle(ctx, engine, args)
	case "rm":
		return cmdDelete(ctx, engine, args)
	case "export":
		return cmdExport(ctx, engine, args)
	case "import":
		return cmdImport(ctx, engine, args)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func cmdList(ctx context.Context, engine *client.Engine) error {
	if err := engine.Load(ctx); err != nil {
		return err
	}
	printTasks(engine.Tasks())
	return nil
}

func cmdAdd(ctx context.Context, engine *client.Engine, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	desc := fs.String("desc", "", "task description")
	due := fs.String("due", "", "due date (RFC3339)")
	if err := parseAfterPositional(fs, args, 1); err != nil {
		return err
	}
	title := args[0]

	if err := engine.Create(ctx, title, *desc, *due); err != nil {
		return err
	}
	printTasks(engine.Tasks())
	return nil
}

func cmdEdit(ctx context.Context, engine *client.Engine, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	title := fs.String("title", "", "new title")
	desc := fs.String("desc", "", "new description")
	due := fs.String("due", "", "new due date (RFC3339)")
	if err := parseAfterPositional(fs, args, 1); err != nil {
		return err
	}
	id := args[0]

	// Editing needs the current list so completion is preserved.
	if err := engine.Load(ctx); err != nil {
		return err
	}

	var fields client.UpdateFields
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			fields.Title = title
		case "desc":
			fields.Description = desc
		case "due":
			fields.DueDate = due
		}
	})

	if err := engine.Update(ctx, id, fields); err != nil {
		return err
	}
	printTasks(engine.Tasks())
	return nil
}

func cmdToggle(ctx context.Context, engine *client.Engine, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: task id is required", apperr.ErrValidation)
	}
	if err := engine.Toggle(ctx, args[0]); err != nil {
		return err
	}
	printTasks(engine.Tasks())
	return nil
}

func cmdDelete(ctx context.Context, engine *client.Engine, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: task id is required", apperr.ErrValidation)
	}
	if err := engine.Delete(ctx, args[0]); err != nil {
		return err
	}
	printTasks(engine.Tasks())
	return nil
}

func cmdExport(ctx context.Context, engine *client.Engine, args []string) error {
	if err := engine.Load(ctx); err != nil {
		return err
	}

	path := client.BackupFileName
	if len(args) > 0 {
		path = args[0]
	}
	if err := client.ExportFile(path, engine.Tasks()); err != nil {
		return err
	}
	fmt.Printf("exported %d task(s) to %s\n", len(engine.Tasks()), path)
	return nil
}

func cmdImport(ctx context.Context, engine *client.Engine, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	merge := fs.Bool("merge", false, "merge with the current list instead of replacing it")
	if err := parseAfterPositional(fs, args, 1); err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	mode := client.ImportReplace
	if *merge {
		mode = client.ImportMerge
		if err := engine.Load(ctx); err != nil {
			return err
		}
	}

	if err := engine.ImportFrom(f, mode); err != nil {
		return err
	}

	fmt.Println("imported locally; NOT synchronized to the server")
	printTasks(engine.Tasks())
	return nil
}

func parseAfterPositional(fs *flag.FlagSet, args []string, positional int) error {
	if len(args) < positional {
		return fmt.Errorf("%w: missing argument", apperr.ErrValidation)
	}
	return fs.Parse(args[positional:])
}

func printTasks(tasks []client.Task) {
	if len(tasks) == 0 {
		fmt.Println("no tasks")
		return
	}
	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		line := fmt.Sprintf("[%s] %s  %s", mark, t.ID, t.Title)
		if t.DueDate != "" {
			line += "  (due " + t.DueDate + ")"
		}
		fmt.Println(line)
	}
}
