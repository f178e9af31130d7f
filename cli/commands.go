package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/sumerqa/chatkit"
	"github.com/sumerqa/chatkit/client"
	"github.com/sumerqa/chatkit/schema"
)

func registerCommands(parser *flags.Parser, options *Options) {
	_, _ = parser.AddCommand("login", "Sign in", "Sign in and persist the session.", &loginCmd{options: options})
	_, _ = parser.AddCommand("signup", "Create an account", "Register a new account and sign in.", &signupCmd{options: options})
	_, _ = parser.AddCommand("logout", "Sign out", "Discard the persisted session.", &logoutCmd{options: options})
	_, _ = parser.AddCommand("whoami", "Show identity", "Show the signed-in user.", &whoamiCmd{options: options})
	_, _ = parser.AddCommand("chats", "List chats", "List chats owned by the signed-in user.", &chatsCmd{options: options})
	_, _ = parser.AddCommand("new-chat", "Create a chat", "Create a new chat.", &newChatCmd{options: options})
	_, _ = parser.AddCommand("send", "Send a message", "Append a user message to a chat.", &sendCmd{options: options})
	_, _ = parser.AddCommand("history", "Show messages", "Show the message history of a chat.", &historyCmd{options: options})
	_, _ = parser.AddCommand("upload", "Upload a document", "Attach a PDF to a chat.", &uploadCmd{options: options})
	_, _ = parser.AddCommand("ask", "Ask a question", "Ask a question grounded in a chat's document.", &askCmd{options: options})
}

// userID resolves the signed-in user, preferring the cached session identity.
func userID(ctx context.Context, kit *chatkit.Client) (string, error) {
	if session, ok := kit.Auth.Session(); ok && session.Identity != nil {
		return session.Identity.UserID, nil
	}
	identity, err := kit.API.Identity(ctx)
	if err != nil {
		return "", err
	}
	return identity.UserID, nil
}

func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

type loginCmd struct {
	options  *Options
	Email    string `short:"e" long:"email" description:"account email" required:"yes"`
	Password string `short:"p" long:"password" description:"account password (prompted when omitted)"`
}

func (c *loginCmd) Execute(args []string) error {
	kit, err := c.options.kit()
	if err != nil {
		return err
	}
	if c.Password == "" {
		if c.Password, err = readPassword("password: "); err != nil {
			return err
		}
	}
	ctx := context.Background()
	if _, err = kit.Auth.Login(ctx, c.Email, c.Password); err != nil {
		return err
	}
	identity, err := kit.API.Identity(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %v (%v)\n", identity.Username, identity.Email)
	return nil
}

type signupCmd struct {
	options  *Options
	Email    string `short:"e" long:"email" description:"account email" required:"yes"`
	Username string `long:"username" description:"account username" required:"yes"`
	Password string `short:"p" long:"password" description:"account password (prompted when omitted)"`
}

func (c *signupCmd) Execute(args []string) error {
	kit, err := c.options.kit()
	if err != nil {
		return err
	}
	if c.Password == "" {
		if c.Password, err = readPassword("password: "); err != nil {
			return err
		}
	}
	request := &schema.SignupRequest{Email: c.Email, Username: c.Username, Password: c.Password}
	if _, err = kit.Auth.Signup(context.Background(), request); err != nil {
		return err
	}
	fmt.Printf("account created for %v\n", c.Email)
	return nil
}

type logoutCmd struct {
	options *Options
}

func (c *logoutCmd) Execute(args []string) error {
	kit, err := c.options.kit()
	if err != nil {
		return err
	}
	return kit.Auth.Logout()
}

type whoamiCmd struct {
	options *Options
}

func (c *whoamiCmd) Execute(args []string) error {
	kit, err := c.options.kit()
	if err != nil {
		return err
	}
	identity, err := kit.API.Identity(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("%v\t%v\t%v\n", identity.UserID, identity.Username, identity.Email)
	return nil
}

type chatsCmd struct {
	options *Options
}

func (c *chatsCmd) Execute(args []string) error {
	kit, err := c.options.kit()
	if err != nil {
		return err
	}
	ctx := context.Background()
	owner, err := userID(ctx, kit)
	if err != nil {
		return err
	}
	chats, err := kit.API.ListChats(ctx, owner)
	if err != nil {
		return err
	}
	for _, chat := range chats {
		title := ""
		if chat.Title != nil {
			title = *chat.Title
		}
		fmt.Printf("%v\t%v\t%v\n", chat.ChatID, chat.UpdatedAt.Format("2006-01-02 15:04"), title)
	}
	return nil
}

type newChatCmd struct {
	options *Options
}

func (c *newChatCmd) Execute(args []string) error {
	kit, err := c.options.kit()
	if err != nil {
		return err
	}
	ctx := context.Background()
	owner, err := userID(ctx, kit)
	if err != nil {
		return err
	}
	chatID, err := kit.API.CreateChat(ctx, owner)
	if err != nil {
		return err
	}
	fmt.Println(chatID)
	return nil
}

type sendCmd struct {
	options *Options
	Chat    string `short:"c" long:"chat" description:"chat id" required:"yes"`
	Args    struct {
		Message []string `positional-arg-name:"message" required:"yes"`
	} `positional-args:"yes"`
}

func (c *sendCmd) Execute(args []string) error {
	kit, err := c.options.kit()
	if err != nil {
		return err
	}
	content := strings.Join(c.Args.Message, " ")
	id, err := kit.API.SendMessage(context.Background(), c.Chat, schema.RoleUser, content)
	if err != nil {
		return err
	}
	fmt.Println(id)
	return nil
}

type historyCmd struct {
	options *Options
	Chat    string `short:"c" long:"chat" description:"chat id" required:"yes"`
	Limit   int    `long:"limit" description:"max messages to fetch"`
	Skip    int    `long:"skip" description:"messages to skip"`
}

func (c *historyCmd) Execute(args []string) error {
	kit, err := c.options.kit()
	if err != nil {
		return err
	}
	messages, err := kit.API.Messages(context.Background(), c.Chat, client.ListOptions{Limit: c.Limit, Skip: c.Skip})
	if err != nil {
		return err
	}
	for _, message := range messages {
		fmt.Printf("[%v] %v: %v\n", message.Timestamp.Format("15:04:05"), message.Role, message.Content)
	}
	return nil
}

type uploadCmd struct {
	options *Options
	Chat    string `short:"c" long:"chat" description:"chat id" required:"yes"`
	Ingest  bool   `long:"ingest" description:"extract and embed the document after upload"`
	Args    struct {
		Path string `positional-arg-name:"file" required:"yes"`
	} `positional-args:"yes"`
}

func (c *uploadCmd) Execute(args []string) error {
	kit, err := c.options.kit()
	if err != nil {
		return err
	}
	file, err := os.Open(c.Args.Path)
	if err != nil {
		return err
	}
	defer file.Close()
	ctx := context.Background()
	fileID, err := kit.API.UploadDocument(ctx, c.Chat, filepath.Base(c.Args.Path), file)
	if err != nil {
		return err
	}
	fmt.Println(fileID)
	if !c.Ingest {
		return nil
	}
	if _, err = kit.API.ProcessDocument(ctx, c.Chat); err != nil {
		return err
	}
	result, err := kit.API.EmbedChat(ctx, c.Chat)
	if err != nil {
		return err
	}
	fmt.Printf("embedded %v chunks\n", result.NumChunksStored)
	return nil
}

type askCmd struct {
	options *Options
	Chat    string `short:"c" long:"chat" description:"chat id" required:"yes"`
	TopK    int    `long:"top-k" description:"number of context chunks to retrieve"`
	Args    struct {
		Query []string `positional-arg-name:"query" required:"yes"`
	} `positional-args:"yes"`
}

func (c *askCmd) Execute(args []string) error {
	kit, err := c.options.kit()
	if err != nil {
		return err
	}
	ctx := context.Background()
	owner, err := userID(ctx, kit)
	if err != nil {
		return err
	}
	request := &schema.AskRequest{
		Query:  strings.Join(c.Args.Query, " "),
		UserID: owner,
		ChatID: c.Chat,
		TopK:   c.TopK,
	}
	answer, err := kit.API.Ask(ctx, request)
	if err != nil {
		return err
	}
	fmt.Println(answer)
	return nil
}
