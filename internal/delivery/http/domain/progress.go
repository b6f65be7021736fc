package domain

var (
	PROFILE_UPSERT_SUCCESS    = "Profile saved"
	PROFILE_UPSERT_FAILED     = "Failed to save profile"
	PROGRESS_GET_SUCCESS      = "Progress fetched"
	PROGRESS_GET_FAILED       = "Failed to fetch progress"
	ACHIEVEMENT_LIST_SUCCESS  = "Achievements fetched"
	ACHIEVEMENT_LIST_FAILED   = "Failed to fetch achievements"
	ACHIEVEMENT_CHECK_SUCCESS = "Achievements checked"
	ACHIEVEMENT_CHECK_FAILED  = "Failed to check achievements"
	USER_ID_INVALID           = "Missing or invalid user id"
	INTERNAL_KEY_INVALID      = "Invalid internal key"
)
