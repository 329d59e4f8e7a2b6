// convctl is an offline maintenance tool for the conversation store:
// list, search, show, delete, and stats without running the server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/michaeljabbour/openai-images-mcp/config"
	"github.com/michaeljabbour/openai-images-mcp/services"
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	config.Load()
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	store, err := openStore()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open conversation store")
	}

	if err := run(store, flag.Args()); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func run(store services.ConversationStore, args []string) error {
	switch args[0] {
	case "list":
		summaries, err := store.List()
		if err != nil {
			return err
		}
		return printJSON(summaries)
	case "search":
		if len(args) < 2 {
			return fmt.Errorf("usage: convctl search <query>")
		}
		summaries, err := store.Search(args[1])
		if err != nil {
			return err
		}
		return printJSON(summaries)
	case "show":
		if len(args) < 2 {
			return fmt.Errorf("usage: convctl show <conversation-id>")
		}
		conv, err := store.Load(args[1])
		if err != nil {
			return err
		}
		return printJSON(conv)
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: convctl delete <conversation-id>")
		}
		if err := store.Delete(args[1]); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", args[1])
		return nil
	case "report":
		if len(args) < 2 {
			return fmt.Errorf("usage: convctl report <conversation-id>")
		}
		conv, err := store.Load(args[1])
		if err != nil {
			return err
		}
		if len(conv.Generations) == 0 {
			return fmt.Errorf("conversation %s has no generations", args[1])
		}
		last := conv.Generations[len(conv.Generations)-1]
		fmt.Printf("Artifact: %s\n\n", last.FilePath)
		fmt.Print(services.NewVerificationService().FormatReport(last.Verification))
		return nil
	case "stats":
		stats, err := store.Stats()
		if err != nil {
			return err
		}
		return printJSON(stats)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func openStore() (services.ConversationStore, error) {
	switch config.StorageBackend() {
	case "bolt":
		return services.NewBoltStore(config.BoltPath())
	case "dynamo":
		return services.NewDynamoStore(config.DynamoEndpoint(), config.DynamoRegion(), config.DynamoTable())
	default:
		return services.NewFileStore(config.StorageDir())
	}
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: convctl <command> [args]

commands:
  list                     list conversations, newest first
  search <query>           search message content
  show <conversation-id>   print one conversation as JSON
  delete <conversation-id> delete a conversation and its generations
  report <conversation-id> verification checklist of the latest generation
  stats                    store size and location`)
}
