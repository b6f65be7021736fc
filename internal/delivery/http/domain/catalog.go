package domain

var (
	SUBJECT_LIST_SUCCESS      = "Subjects fetched"
	SUBJECT_LIST_FAILED       = "Failed to fetch subjects"
	PROMPT_LIST_SUCCESS       = "Prompt templates fetched"
	PROMPT_LIST_FAILED        = "Failed to fetch prompt templates"
	PROMPT_SELECT_SUCCESS     = "Prompt template selected"
	PROMPT_SELECT_EMPTY       = "No prompt template matched"
	PROMPT_SELECT_FAILED      = "Failed to select prompt template"
	PROMPT_CREATE_SUCCESS     = "Prompt template created"
	PROMPT_CREATE_FAILED      = "Failed to create prompt template"
	PROMPT_UPDATE_SUCCESS     = "Prompt template updated"
	PROMPT_UPDATE_FAILED      = "Failed to update prompt template"
	PROMPT_SET_ACTIVE_SUCCESS = "Prompt template availability updated"
	PROMPT_SET_ACTIVE_FAILED  = "Failed to update prompt template availability"
)
