// Command adminctl obtains a bearer token from a running server: it prompts
// for credentials and prints the token for use in scripted API calls.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

func main() {
	addr := flag.String("a", "http://localhost:8080", "server base URL")
	flag.Parse()

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		fmt.Fprintf(os.Stderr, "read error: %v\n", err)
		os.Exit(1)
	}
	username = strings.TrimSpace(username)

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Fprintf(os.Stderr, "read error: %v\n", err)
		os.Exit(1)
	}

	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": string(password),
	})

	resp, err := http.Post(*addr+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "login request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "login rejected: %s\n", resp.Status)
		os.Exit(1)
	}

	var out struct {
		Token    string `json:"token"`
		Username string `json:"username"`
		Roles    string `json:"roles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		fmt.Fprintf(os.Stderr, "bad response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("# %s (%s)\n", out.Username, out.Roles)
	fmt.Println(out.Token)
}
