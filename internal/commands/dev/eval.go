package dev

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/HavenStudios/HavenBotGo/pkg/config"
	"github.com/HavenStudios/HavenBotGo/pkg/database"
	"github.com/HavenStudios/HavenBotGo/pkg/discord"
	"github.com/HavenStudios/HavenBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// CreateEvalCommand creates the /dev eval command
func CreateEvalCommand() *discord.Command {
	return discord.NewCommand(
		"eval",
		"Evaluate Go code and inspect internal state (dangerous)",
		"dev",
		evalHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "code",
			Description: "Go code or expression to evaluate",
			Required:    true,
		},
	)
}

func evalHandler(ctx *discord.CommandContext) error {
	start := time.Now()

	// Owner check on top of the dev-guild restriction
	if ctx.User().ID != config.Get().OwnerID {
		return ctx.ReplyEphemeral("❌ **Access Denied:** This command is reserved for the bot owner.")
	}

	// Compiling the script can take a few milliseconds
	if err := ctx.Defer(); err != nil {
		return err
	}

	// Strip markdown code fences if present
	code := ctx.GetStringOption("code")
	code = strings.TrimPrefix(code, "```go")
	code = strings.TrimPrefix(code, "```")
	code = strings.TrimSuffix(code, "```")
	code = strings.TrimSpace(code)

	i := interp.New(interp.Options{})

	if err := i.Use(stdlib.Symbols); err != nil {
		return ctx.EditReply(fmt.Sprintf("❌ Error loading stdlib: %v", err))
	}

	// Expose bot internals so scripts can use Ctx, Bot, Session, DB, Config
	botExports := map[string]reflect.Value{
		"Ctx":     reflect.ValueOf(ctx),
		"Bot":     reflect.ValueOf(ctx.Client),
		"Session": reflect.ValueOf(ctx.Session),
		"DB":      reflect.ValueOf(database.Get()),
		"Config":  reflect.ValueOf(config.Get()),
	}

	if err := i.Use(interp.Exports{
		"github.com/HavenStudios/HavenBotGo/internal/commands/dev/dev": botExports,
	}); err != nil {
		return ctx.EditReply(fmt.Sprintf("❌ Error registering variables: %v", err))
	}

	if _, err := i.Eval(`import . "github.com/HavenStudios/HavenBotGo/internal/commands/dev"`); err != nil {
		return ctx.EditReply(fmt.Sprintf("❌ Error importing variables: %v", err))
	}

	res, err := i.Eval(code)

	var output string
	if err != nil {
		output = fmt.Sprintf("❌ **Execution Error:**\n```go\n%v\n```", err)
	} else {
		var resStr string
		if res.IsValid() {
			resStr = fmt.Sprintf("%#v", res.Interface())
		} else {
			resStr = "nil"
		}
		if len(resStr) > 1900 {
			resStr = resStr[:1900] + "... (truncated)"
		}

		output = fmt.Sprintf("✅ **Result:**\n```go\n%s\n```", resStr)
	}

	elapsed := time.Since(start)
	logger.Debug(fmt.Sprintf("Eval completed in %s", elapsed), "DevEval")

	return ctx.EditReply(output)
}
