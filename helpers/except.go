// Except.go: Contains functions to make handling panics less PITA

package helpers

import (
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/Zero-for-One/TatiBot/cache"
	"github.com/bwmarrin/discordgo"
	"github.com/getsentry/raven-go"
)

// DEBUG_MODE enables stacktraces in discord error replies
var DEBUG_MODE = false

type Callback func()

// RecoverDiscord recover()s and sends a message to discord
func RecoverDiscord(msg *discordgo.Message) {
	err := recover()
	if err != nil {
		SendError(msg, err)
	}
}

// Recover recover()s and prints the error to console
func Recover() {
	err := recover()
	if err != nil {
		fmt.Printf("%#v\n", err)

		raven.CaptureError(fmt.Errorf("%#v", err), map[string]string{})
	}
}

// SoftRelax is a softer form of Relax()
// Calls a callback instead of panicking
func SoftRelax(err error, cb Callback) {
	if err != nil {
		cb()
	}
}

// Relax is a helper to reduce if-checks if panicking is allowed
// If $err is nil this is a no-op. Panics otherwise.
func Relax(err error) {
	if err != nil {
		if DEBUG_MODE == true {
			fmt.Printf("%#v\n", err)
		}
		panic(err)
	}
}

// RelaxMessage does nothing if $err is nil or if there are no permissions
// to send a message, else sends it to Relax()
func RelaxMessage(err error, channelID string, commandMessageID string) {
	if err != nil {
		if errD, ok := err.(*discordgo.RESTError); ok {
			if errD.Message != nil && errD.Message.Code == discordgo.ErrCodeMissingPermissions {
				if channelID != "" && commandMessageID != "" {
					cache.GetSession().MessageReactionAdd(channelID, commandMessageID, "🚫")
				}
			} else {
				Relax(err)
			}
		} else {
			Relax(err)
		}
	}
}

// SendError Takes an error and sends it to discord and sentry.io
func SendError(msg *discordgo.Message, err interface{}) {
	if DEBUG_MODE == true {
		buf := make([]byte, 1<<16)
		stackSize := runtime.Stack(buf, false)

		cache.GetSession().ChannelMessageSend(
			msg.ChannelID,
			"Error 😞\n```\n"+fmt.Sprintf("%#v\n", err)+fmt.Sprintf("%s\n", string(buf[0:stackSize]))+"\n```",
		)
	} else {
		if errR, ok := err.(*discordgo.RESTError); ok && errR != nil && errR.Message != nil {
			if msg != nil {
				cache.GetSession().ChannelMessageSend(
					msg.ChannelID,
					"Error 😞\n```\n"+fmt.Sprintf("%#v", errR.Message.Message)+"\n```",
				)
			}
		} else {
			if msg != nil {
				cache.GetSession().ChannelMessageSend(
					msg.ChannelID,
					"Error 😞\n```\n"+fmt.Sprintf("%#v", err)+"\n```",
				)
			}
		}
	}

	if msg == nil {
		raven.CaptureError(fmt.Errorf("%#v", err), map[string]string{})
		return
	}

	raven.SetUserContext(&raven.User{
		ID:       msg.ID,
		Username: msg.Author.Username + "#" + msg.Author.Discriminator,
	})

	raven.CaptureError(fmt.Errorf("%#v", err), map[string]string{
		"ChannelID":       msg.ChannelID,
		"Content":         msg.Content,
		"Timestamp":       msg.Timestamp.Format(time.RFC3339),
		"TTS":             strconv.FormatBool(msg.TTS),
		"MentionEveryone": strconv.FormatBool(msg.MentionEveryone),
		"IsBot":           strconv.FormatBool(msg.Author.Bot),
	})
}
