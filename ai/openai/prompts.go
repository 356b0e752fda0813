package openai

const intentResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "agent_type": {
      "type": "string",
      "enum": ["ingestion", "query", "summarization"]
    },
    "action": {
      "type": "string"
    },
    "confidence": {
      "type": "number",
      "minimum": 0,
      "maximum": 1
    },
    "reasoning": {
      "type": "string"
    }
  },
  "required": ["agent_type", "action", "confidence", "reasoning"],
  "additionalProperties": false
}`

const intentPromptTemplate = `You route user input for a personal knowledge assistant to one of three capabilities and return the decision as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Capabilities and their actions:
- ingestion: stores new content. Actions: "ingest_url" (input is a URL to fetch and store), "ingest_text" (input is raw text to store).
- query: searches stored notes. Actions: "search" (input is a question or search request), "find_similar", "get_recent".
- summarization: condenses content. Actions: "summarize_existing" (input asks for a summary, brief, or overview), "generate_summary".

Routing heuristics:
- A URL always goes to ingestion/ingest_url.
- Interrogative or search-verb-led text ("what", "how", "find", "search", ...) goes to query/search.
- Text led by summarization keywords ("summarize", "summary", "brief", "overview") goes to summarization/summarize_existing.
- Long declarative text and anything else worth keeping goes to ingestion/ingest_text.

Rules:
- Confidence is a number from 0 (guess) to 1 (certain).
- Reasoning is one short sentence.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "https://example.com/articles/go-generics"
Output:
{"agent_type":"ingestion","action":"ingest_url","confidence":0.98,"reasoning":"Input is a URL to fetch and store."}

Example:
Input: "what did I save about kubernetes networking"
Output:
{"agent_type":"query","action":"search","confidence":0.95,"reasoning":"Interrogative phrasing asking to find stored notes."}

Example:
Input: "summarize my notes on garden planning"
Output:
{"agent_type":"summarization","action":"summarize_existing","confidence":0.9,"reasoning":"Explicit request for a summary."}`

const analysisResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "title": {
      "type": "string"
    },
    "summary": {
      "type": "string"
    },
    "tags": {
      "type": "array",
      "items": {"type": "string"}
    },
    "content_type": {
      "type": "string"
    },
    "key_insights": {
      "type": "array",
      "items": {"type": "string"}
    }
  },
  "required": ["title", "summary", "tags", "content_type", "key_insights"],
  "additionalProperties": false
}`

const analysisPromptTemplate = `Analyze the given content for a personal knowledge base and return structured metadata as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- title: a concise descriptive title. If a title hint is provided in the input, prefer it unless clearly wrong.
- summary: 120-180 words capturing the substance of the content.
- tags: 5-10 lowercase topical tags.
- content_type: one of "article", "documentation", "tutorial", "reference", "note", "text".
- key_insights: 3-5 short sentences stating the most important points.
- Base everything on the content given. Do not hallucinate.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`

const summaryResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "summary": {
      "type": "string"
    },
    "tags": {
      "type": "array",
      "items": {"type": "string"}
    }
  },
  "required": ["summary", "tags"],
  "additionalProperties": false
}`

const summaryPromptTemplate = `Summarize the given content and propose topical tags, returned as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- summary: a faithful condensation of the content in 120-180 words. Shorter is fine for short input.
- tags: 3-8 lowercase topical tags.
- Do not add information that is not in the content.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`
