package domain

var (
	SUBMISSION_CREATE_SUCCESS   = "Submission created"
	SUBMISSION_CREATE_FAILED    = "Failed to create submission"
	SUBMISSION_GET_SUCCESS      = "Submission fetched"
	SUBMISSION_GET_FAILED       = "Failed to fetch submission"
	SUBMISSION_LIST_SUCCESS     = "Submissions fetched"
	SUBMISSION_LIST_FAILED      = "Failed to fetch submissions"
	SUBMISSION_SOLVE_SUCCESS    = "Submission processed"
	SUBMISSION_SOLVE_FAILED     = "Failed to process submission"
	SUBMISSION_COMPLETE_SUCCESS = "Submission completed"
	SUBMISSION_COMPLETE_FAILED  = "Failed to complete submission"
	SUBMISSION_FAIL_SUCCESS     = "Submission marked as failed"
	SUBMISSION_FAIL_FAILED      = "Failed to mark submission as failed"
	SUBMISSION_ARCHIVE_SUCCESS  = "Submission archived"
	SUBMISSION_ARCHIVE_FAILED   = "Failed to archive submission"
	SUBMISSION_RATE_SUCCESS     = "Rating saved"
	SUBMISSION_RATE_FAILED      = "Failed to save rating"
)
