package constants

const (
	MAX_PAGE_SIZE               = 100
	DEFAULT_OFFSET              = uint64(0)
	DEFAULT_PROPOSALS_LIMIT     = 20
	DEFAULT_VOTES_LIMIT         = 50
	DEFAULT_GRANTS_LIMIT        = 20
	MAX_UPCOMING_MONTHS         = 120
	MAX_TITLE_LENGTH            = 256
	MAX_DESCRIPTION_LENGTH      = 64 * 1024
	MAX_METADATA_BYTES          = 16 * 1024
	UPCOMING_SOURCE_GRANTS      = "grants"
	UPCOMING_SOURCE_ALLOCATIONS = "allocations"
)
