// Command cli is a small terminal client for the task tracker backend. It
// keeps the bearer token in the user config dir, so a login survives between
// invocations the same way a browser session survives a reload.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"TASKTRACKER_BACK-END/internal/client"
	"TASKTRACKER_BACK-END/internal/dto"
)

const usage = `Usage: cli [-server URL] <command> [args]

Commands:
  signup -name NAME -email EMAIL -password PASS   register and log in
  login -email EMAIL -password PASS               log in
  whoami                                          show the current identity
  logout                                          forget the stored token
  add -title TITLE [-desc TEXT] [-status S]       create a task
  list                                            list tasks, newest first
  get ID                                          show one task
  done ID                                         mark a task completed
  rm ID                                           delete a task
`

func main() {
	log.SetFlags(0)

	server := flag.String("server", envOr("TASKTRACKER_SERVER", "http://localhost:8080"), "backend base URL")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	tokenPath, err := client.DefaultTokenPath()
	if err != nil {
		log.Fatalf("resolving token path: %v", err)
	}
	c := client.New(*server, client.NewFileTokenStore(tokenPath))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, c, flag.Arg(0), flag.Args()[1:]); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(ctx context.Context, c *client.Client, command string, args []string) error {
	switch command {
	case "signup":
		fs := flag.NewFlagSet("signup", flag.ExitOnError)
		name := fs.String("name", "", "display name")
		email := fs.String("email", "", "email address")
		pass := fs.String("password", "", "password")
		fs.Parse(args)
		user, err := c.Signup(ctx, *name, *email, *pass)
		if err != nil {
			return err
		}
		fmt.Printf("Registered and logged in as %s <%s>\n", user.Name, user.Email)
		return nil

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "email address")
		pass := fs.String("password", "", "password")
		fs.Parse(args)
		user, err := c.Login(ctx, *email, *pass)
		if err != nil {
			return err
		}
		fmt.Printf("Logged in as %s <%s>\n", user.Name, user.Email)
		return nil

	case "whoami":
		if err := c.Restore(ctx); err != nil {
			return err
		}
		if c.Session().State() != client.StateAuthenticated {
			fmt.Println("Not logged in.")
			return nil
		}
		user := c.Session().User()
		fmt.Printf("%s <%s> (id %s)\n", user.Name, user.Email, user.ID)
		return nil

	case "logout":
		if err := c.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil

	case "add":
		fs := flag.NewFlagSet("add", flag.ExitOnError)
		title := fs.String("title", "", "task title")
		desc := fs.String("desc", "", "task description")
		status := fs.String("status", "", "pending|in-progress|completed")
		fs.Parse(args)
		task, err := c.CreateTask(ctx, *title, *desc, *status)
		if err != nil {
			return err
		}
		fmt.Printf("Created %s\n", task.ID)
		return nil

	case "list":
		tasks, err := c.ListTasks(ctx)
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks.")
			return nil
		}
		for _, t := range tasks {
			fmt.Printf("%s  [%-11s]  %s\n", t.ID, t.Status, t.Title)
		}
		return nil

	case "get":
		id, err := requireID(args)
		if err != nil {
			return err
		}
		task, err := c.GetTask(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("%s\n  title:       %s\n  status:      %s\n  description: %s\n  created:     %s\n",
			task.ID, task.Title, task.Status, task.Description, task.CreatedAt)
		return nil

	case "done":
		id, err := requireID(args)
		if err != nil {
			return err
		}
		completed := "completed"
		if _, err := c.UpdateTask(ctx, id, dto.UpdateTaskRequest{Status: &completed}); err != nil {
			return err
		}
		fmt.Println("Done.")
		return nil

	case "rm":
		id, err := requireID(args)
		if err != nil {
			return err
		}
		if err := c.DeleteTask(ctx, id); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil

	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func requireID(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected exactly one task id")
	}
	return args[0], nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
