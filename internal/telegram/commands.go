package telegram

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// CommandHandler 处理斜杠命令，返回回复文本和 parse_mode
type CommandHandler func(ctx context.Context) (text, parseMode string)

// Command 斜杠命令定义
type Command struct {
	Name        string
	Description string
	Handler     CommandHandler
}

// CommandRegistry 命令注册中心
type CommandRegistry struct {
	commands map[string]*Command
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewCommandRegistry 创建命令注册中心
func NewCommandRegistry(logger *zap.Logger) *CommandRegistry {
	return &CommandRegistry{
		commands: make(map[string]*Command),
		logger:   logger,
	}
}

// Register 注册命令，名称为空或重复时返回错误
func (r *CommandRegistry) Register(cmd *Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cmd.Name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if cmd.Handler == nil {
		return fmt.Errorf("command handler not implemented: %s", cmd.Name)
	}
	if _, exists := r.commands[cmd.Name]; exists {
		return fmt.Errorf("command already registered: %s", cmd.Name)
	}

	r.commands[cmd.Name] = cmd
	r.logger.Debug("命令已注册", zap.String("name", cmd.Name))
	return nil
}

// Get 按名称查找命令
func (r *CommandRegistry) Get(name string) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List 按名称排序列出所有命令
func (r *CommandRegistry) List() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// BotCommands 转换为 setMyCommands 的参数
func (r *CommandRegistry) BotCommands() []BotCommand {
	cmds := r.List()
	out := make([]BotCommand, len(cmds))
	for i, cmd := range cmds {
		out[i] = BotCommand{Command: cmd.Name, Description: cmd.Description}
	}
	return out
}

// registerBuiltinCommands 注册 /start /help /status
func registerBuiltinCommands(r *CommandRegistry, assistant Assistant) error {
	builtin := []*Command{
		{
			Name:        "start",
			Description: "Welcome message",
			Handler: func(context.Context) (string, string) {
				return welcomeText, parseModeMarkdown
			},
		},
		{
			Name:        "help",
			Description: "List what the assistant understands",
			Handler: func(context.Context) (string, string) {
				return helpText, parseModeMarkdown
			},
		},
		{
			Name:        "status",
			Description: "Bot and intent model status",
			Handler: func(context.Context) (string, string) {
				if assistant.Ready() {
					return statusReadyText, parseModeMarkdown
				}
				return statusDegradedText, parseModeMarkdown
			},
		},
	}
	for _, cmd := range builtin {
		if err := r.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}
