// Package clock provides the get_current_time tool.
package clock

import (
	"context"
	"time"

	"github.com/finagent-ai/finagent/tool"
	"github.com/finagent-ai/finagent/toolerr"
)

const toolName = "get_current_time"

// Clock reports the current time in one of several formats. The time source
// is injectable for tests.
type Clock struct {
	now func() time.Time
}

// New creates the tool with the wall clock as its time source.
func New() *Clock {
	return &Clock{now: time.Now}
}

// NewWithSource creates the tool with a custom time source.
func NewWithSource(now func() time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Name() string        { return toolName }
func (c *Clock) Description() string { return "获取当前时间工具" }

func (c *Clock) Schema() tool.Schema {
	return tool.Schema{
		Description: c.Description(),
		Params: []tool.Param{
			{
				Name:        "time_format",
				Type:        "str",
				Description: "时间格式",
				Optional:    true,
				Enum: []tool.EnumValue{
					{Value: "standard", Description: "标准格式 YYYY-MM-DD HH:MM:SS"},
					{Value: "timestamp", Description: "Unix时间戳"},
					{Value: "detailed", Description: "详细信息字典"},
					{Value: "chinese", Description: "中文格式 YYYY年MM月DD日"},
				},
			},
		},
	}
}

// Call returns the current time. An unrecognized format is an invalid-input
// failure rather than a silent default, matching the enum in the schema.
func (c *Clock) Call(_ context.Context, args map[string]any) (any, error) {
	format, ok := tool.StringArg(args, "time_format")
	if !ok || format == "" {
		format = "standard"
	}

	now := c.now()
	switch format {
	case "standard":
		return now.Format("2006-01-02 15:04:05"), nil
	case "timestamp":
		return now.Unix(), nil
	case "chinese":
		return now.Format("2006年01月02日 15时04分05秒"), nil
	case "detailed":
		return map[string]any{
			"year":       now.Year(),
			"month":      int(now.Month()),
			"day":        now.Day(),
			"hour":       now.Hour(),
			"minute":     now.Minute(),
			"second":     now.Second(),
			"weekday":    now.Weekday().String(),
			"iso_format": now.Format(time.RFC3339),
			"timestamp":  now.Unix(),
		}, nil
	default:
		return nil, toolerr.New(toolName, "format", toolerr.ErrCodeInvalidInput,
			"不支持的时间格式: "+format)
	}
}
