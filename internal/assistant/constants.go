package assistant

import "time"

// Generation defaults
const (
	DefaultModel        = "models/gemini-2.5-flash-lite-preview-09-2025"
	DefaultMaxTokens    = 1000
	DefaultTemperature  = 0.7
	DefaultHistoryLimit = 20
	DefaultHistoryUsers = 1024
	DefaultTimeout      = 60 * time.Second
)

// Input limits
const (
	MaxMessageLength = 4000
	MaxCodeLength    = 20000
)

// Operation names, used as metric labels
const (
	OpChat         = "chat"
	OpExplainCode  = "explain_code"
	OpHint         = "hint"
	OpDebug        = "debug"
	OpLearnConcept = "learn_concept"
)

// Log messages
const (
	LogMsgGenerateFailed  = "Assistant generation failed"
	LogMsgGenerated       = "Assistant reply generated"
	LogMsgHistoryCleared  = "Assistant history cleared"
	LogMsgGeminiDisabled  = "Gemini API key not set, assistant disabled"
	LogMsgGeminiConnected = "Gemini client initialized"
)

const baseInstruction = `You are CodeQuest's coding tutor. You help learners understand programming
concepts, read code, and get unstuck on exercises.

Guidelines:
- Prefer hints and guiding questions over finished solutions.
- Wrap code in backticks and name the language of every code block.
- Keep answers under 500 words unless the learner asks for more depth.
- Be encouraging and concrete. Point at the exact line or idea that matters.`

const explainTemplate = `Explain the following %s code to a learner.

Cover, in order:
1. What the code does overall
2. How it works, step by step
3. The key concepts it relies on
4. A short example of using it

Code:
` + "```%s\n%s\n```"

const hintTemplate = `A learner is working on this %s challenge and asked for a hint.

Title: %s
Description:
%s

%s
Do not give the full solution.`

const debugTemplate = `A learner's %s code fails with this error:

%s

Code:
` + "```%s\n%s\n```" + `

Explain:
1. What went wrong
2. The root cause
3. How to fix it
4. The corrected code
5. How to avoid this mistake next time`

const conceptTemplate = `Teach the concept "%s" to a %s learner.

Include:
1. A plain definition
2. Why it matters
3. The key points to remember
4. A short code example
5. Common mistakes
6. One practice exercise`
