package telegram

import (
	"context"
	"strings"
	"time"

	"github.com/intentbot/intentbot-go/internal/model"
	"go.uber.org/zap"
)

const (
	welcomeText = `🤖 *Welcome to the Virtual Assistant!*

I'm your assistant on Telegram. Send me a command and I'll take care of it.

💡 *Examples:* 'hello', 'turn on the lights', 'how are you', 'help', 'goodbye'

Type /help to see every available command.`

	helpText = `🆘 *Virtual Assistant Help*

📋 *Available commands:*

🙋 *Greetings:* 'hello', 'good morning', 'good afternoon'
👋 *Farewells:* 'goodbye', 'see you later', 'exit'
🏠 *Home:* 'turn on/off the lights', 'turn on/off the tv'
💬 *Status:* 'how are you', 'how is it going'
ℹ️ *Information:* 'what time is it', 'help'
🙏 *Gratitude:* 'thank you', 'perfect'
🌤️ *Weather:* 'how is the weather', 'will it rain'

*Special commands:*
/start - Welcome message
/help - This help
/status - Bot status

Just type your message and I'll understand you! 😊`

	statusReadyText = `🔧 *System status*

✅ Bot running
🤖 Intent model: trained and ready
📊 Prediction: operational

🎯 Ready to process your commands!`

	statusDegradedText = `🔧 *System status*

✅ Bot running
⚠️ Intent model: not trained, every message gets a fallback reply`

	// ErrorReply 处理失败时回给用户的消息
	ErrorReply = "😔 Sorry, there was an error processing your message. Please try again."

	parseModeMarkdown = "Markdown"
)

// Assistant 机器人依赖的意图流水线
type Assistant interface {
	Process(ctx context.Context, text string) model.RespondResponse
	Ready() bool
}

// Sender 发送消息
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text, parseMode string) error
}

// Bot Telegram 长轮询机器人
type Bot struct {
	client      *Client
	assistant   Assistant
	pollTimeout time.Duration
	retryDelay  time.Duration
	commands    *CommandRegistry
	logger      *zap.Logger
}

// NewBot 创建机器人
func NewBot(client *Client, assistant Assistant, pollTimeout time.Duration, logger *zap.Logger) *Bot {
	commands := NewCommandRegistry(logger)
	if err := registerBuiltinCommands(commands, assistant); err != nil {
		// 内置命令名固定，注册失败说明代码有误
		panic(err)
	}
	return &Bot{
		client:      client,
		assistant:   assistant,
		pollTimeout: pollTimeout,
		retryDelay:  3 * time.Second,
		commands:    commands,
		logger:      logger,
	}
}

// Commands 命令注册中心，可在 Run 之前注册额外命令
func (b *Bot) Commands() *CommandRegistry {
	return b.commands
}

// Run 长轮询直到 ctx 取消。拉取失败时等待 retryDelay 后重试
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Telegram 机器人开始轮询", zap.Duration("pollTimeout", b.pollTimeout))

	// 命令菜单发布失败不影响收发消息
	if err := b.client.SetMyCommands(ctx, b.commands.BotCommands()); err != nil {
		b.logger.Warn("发布命令菜单失败", zap.Error(err))
	}

	var offset int64
	for {
		updates, err := b.client.GetUpdates(ctx, offset, b.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			b.logger.Warn("拉取更新失败", zap.Error(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(b.retryDelay):
			}
			continue
		}

		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			b.HandleUpdate(ctx, b.client, u)
		}
	}
}

// HandleUpdate 处理单条更新：命令返回固定文本，其余文本交给意图流水线
func (b *Bot) HandleUpdate(ctx context.Context, sender Sender, u Update) {
	msg := u.Message
	if msg == nil || strings.TrimSpace(msg.Text) == "" {
		return
	}

	userName := ""
	if msg.From != nil {
		userName = msg.From.FirstName
	}
	b.logger.Info("收到 Telegram 消息",
		zap.Int64("chatId", msg.Chat.ID),
		zap.String("user", userName),
		zap.String("text", msg.Text))

	text, parseMode := b.reply(ctx, msg.Text)
	if err := sender.SendMessage(ctx, msg.Chat.ID, text, parseMode); err != nil {
		b.logger.Error("发送回复失败", zap.Int64("chatId", msg.Chat.ID), zap.Error(err))
		if parseMode != "" {
			// Markdown 解析失败时退回纯文本
			_ = sender.SendMessage(ctx, msg.Chat.ID, text, "")
		}
	}
}

func (b *Bot) reply(ctx context.Context, text string) (reply, parseMode string) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("处理消息异常", zap.Any("panic", r))
			reply, parseMode = ErrorReply, ""
		}
	}()

	if name, ok := parseCommand(text); ok {
		if cmd, found := b.commands.Get(name); found {
			return cmd.Handler(ctx)
		}
	}
	return b.assistant.Process(ctx, text).Reply, ""
}

// parseCommand 解析 "/cmd@botname args" 形式的命令
func parseCommand(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	cmd := strings.Fields(text[1:])
	if len(cmd) == 0 {
		return "", false
	}
	name, _, _ := strings.Cut(cmd[0], "@")
	return strings.ToLower(name), name != ""
}
