package providers

import (
	_ "github.com/stake-plus/summarybot/src/ai/anthropic"
	_ "github.com/stake-plus/summarybot/src/ai/openai"
)
