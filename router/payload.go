package router

// buildPayload maps an (agent type, action) pair to the payload shape
// its handler expects. Unrecognized combinations get base metadata only.
func buildPayload(agentType, action, input, inputType string) map[string]any {
	payload := map[string]any{
		"input_type": inputType,
	}

	switch {
	case agentType == AgentIngestion && action == ActionIngestURL:
		payload["url"] = input
		payload["title"] = ""
		payload["content"] = ""
	case agentType == AgentIngestion && action == ActionIngestText:
		payload["title"] = ""
		payload["content"] = input
	case agentType == AgentQuery && action == ActionSearch:
		payload["query"] = input
		payload["search_type"] = "semantic"
	case agentType == AgentQuery && action == ActionEmptyInput:
		// base metadata only
	case agentType == AgentSummarization:
		payload["content"] = input
	}

	return payload
}
