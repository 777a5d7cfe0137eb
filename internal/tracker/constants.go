package tracker

// APIFields is the field set requested from the tracker for stories.
const APIFields = "id,name,status,owner,v_status"

// BugAPIFields is the field set requested for bugs; bugs carry a title
// instead of a name.
const BugAPIFields = "id,title,status,owner"

// FetchLimit caps how many records one poll requests per kind.
const FetchLimit = 50

// StatusesToFetch is the allow-list of secondary statuses polled from the
// tracker, spanning pre-review through fully-tested.
var StatusesToFetch = []string{
	"方案中",
	"预审通过",
	"待正式评审",
	"技术方案中",
	"排期中",
	"开发中",
	"已提测",
	"测试中",
	"已测完",
}

// statusGlyphs decorates a secondary status with a thematic glyph for the
// overlay. Unmatched statuses pass through unchanged.
var statusGlyphs = map[string]string{
	"预审通过": "📖预审通过",
	"方案中":  "📘方案中",
	"排期中":  "🧭排期中",
	"开发中":  "🔧开发中",
	"已提测":  "✅已提测",
	"测试中":  "🔬测试中",
	"已测完":  "✅已测完",
}

// GamifyStatus returns the decorated display form of a secondary status.
func GamifyStatus(status string) string {
	if g, ok := statusGlyphs[status]; ok {
		return g
	}
	return status
}

// Role profile field identifiers from the tracker's custom fields.
const (
	RoleFieldApprover = "custom_field_9"
	RoleFieldVerifier = "custom_field_10"
)

var (
	approverClaimable = []string{"排期中", "开发中", "已提测", "测试中", "已测完"}
	verifierClaimable = []string{"已测完"}
	defaultClaimable  = []string{"已提测", "测试中", "已测完"}
)

// ClaimableStatuses returns the claimable status set for a role field.
// Unknown roles fall back to the default (implementer) profile.
func ClaimableStatuses(roleField string) map[string]struct{} {
	var statuses []string
	switch roleField {
	case RoleFieldApprover:
		statuses = approverClaimable
	case RoleFieldVerifier:
		statuses = verifierClaimable
	default:
		statuses = defaultClaimable
	}

	set := make(map[string]struct{}, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	return set
}

// StatusPriority orders active items for display, later pipeline stages
// first. Statuses absent from this list sort last within their group.
var StatusPriority = []string{
	"已提测",
	"测试中",
	"已测完",
	"开发中",
	"排期中",
	"待正式评审",
	"技术方案中",
	"预审通过",
	"方案中",
}

// statusRank returns the sort index of a status, or len(StatusPriority) for
// statuses outside the priority list.
func statusRank(status string) int {
	for i, s := range StatusPriority {
		if s == status {
			return i
		}
	}
	return len(StatusPriority)
}

// ChangeLogCap bounds the in-memory status-change log. With a daily poll
// cadence the cap is unreachable in practice; it exists to bound a
// pathological transport.
const ChangeLogCap = 1000

// User-facing error messages
const (
	MsgAuthFailed  = "Authentication failed. Please check your TAPD token."
	MsgFetchFailed = "Failed to fetch tracker data."
)

// Log messages
const (
	LogMsgPollSkipped    = "Poll already in flight, skipping"
	LogMsgPollCompleted  = "Poll completed"
	LogMsgPollFailed     = "Poll failed"
	LogMsgTokenMissing   = "Tracker token not set, skipping fetch"
	LogMsgDuplicateItem  = "Dropped duplicate item from snapshot"
	LogMsgAlreadyClaimed = "Item already claimed, ignoring"
	LogMsgItemClaimed    = "Item claimed"
)
