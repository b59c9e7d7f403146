package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/wardtools/callings-app-sheets/worksheet"
)

var AuthoriseCmd = Authorise{
	command: command{
		credentials: "",
		debug:       false,
	},
}

// Authorise obtains an OAuth2 token for OAuth2 client credentials and saves it
// alongside the credentials file. Service account credentials do not need it.
type Authorise struct {
	command
}

func (cmd *Authorise) Name() string {
	return "authorise"
}

func (cmd *Authorise) Description() string {
	return "Authorises access to the Google Sheets worksheets with OAuth2 client credentials"
}

func (cmd *Authorise) Usage() string {
	return "[--credentials <file>]"
}

func (cmd *Authorise) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--config <file>] authorise [--credentials <file>]\n", APP)
	fmt.Println()
	fmt.Println("  Authorises access to the Google Sheets worksheets and saves the OAuth2 token alongside the credentials file.")
	fmt.Println("  Not required for service account credentials.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s authorise --credentials church_creds.json\n", APP)
	fmt.Println()
}

func (cmd *Authorise) FlagSet() *flag.FlagSet {
	return cmd.flagset("authorise")
}

func (cmd *Authorise) Execute(args ...any) error {
	conf, err := cmd.configure(args...)
	if err != nil {
		return err
	}

	b, err := os.ReadFile(conf.Credentials.File)
	if err != nil {
		return err
	}

	config, err := google.ConfigFromJSON(b, worksheet.SHEETS, worksheet.DRIVE)
	if err != nil {
		return fmt.Errorf("authorisation error (%w)", err)
	}

	token, err := getTokenFromWeb(context.Background(), config, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	return saveToken(conf.Credentials.Tokens(), token)
}

// Request a token from the web, then returns the retrieved token.
func getTokenFromWeb(ctx context.Context, config *oauth2.Config, in io.Reader, out io.Writer) (*oauth2.Token, error) {
	url := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)

	fmt.Fprintf(out, "Go to the following link in your browser then type the authorization code:\n%v\n", url)

	code, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("unable to read authorization code (%w)", err)
	}

	token, err := config.Exchange(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web (%w)", err)
	}

	return token, nil
}

// Saves a token to a file path.
func saveToken(path string, token *oauth2.Token) error {
	fmt.Printf("Saving credential file to: %s\n", path)

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache OAuth2 token (%w)", err)
	}

	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
