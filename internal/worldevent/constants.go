package worldevent

import "time"

// Narrative event identifiers, matched against the world-events resource.
const (
	EventBugFixed      = "BUG_FIXED"
	EventBugReopened   = "BUG_REOPENED"
	EventStoryRollback = "STORY_ROLLBACK"
)

// Tracker statuses the mapper reacts to.
const StatusBugResolved = "已解决"

// bugReopenedStatuses lists the statuses that mean a resolved bug came back.
// The tracker reports this in Chinese or English depending on workspace
// settings.
var bugReopenedStatuses = []string{"重新打开", "Reopened"}

// storyProgressOrder is the coarse story lifecycle used for rollback
// detection. A transition to an earlier stage within this list is a
// rollback; statuses outside the list never are.
var storyProgressOrder = []string{"规划中", "实现中", "已完成"}

// FallbackMessage is shown when an event id has no configured copy.
const FallbackMessage = "世界线发生了未知变化..."

// DisplayDuration is how long a narrative message stays on screen before
// the dispatcher clears it.
const DisplayDuration = 8 * time.Second

// ConfigCacheSize bounds the parsed config cache. There is one resource file
// per source in practice.
const ConfigCacheSize = 8

// Log messages
const (
	LogMsgInvalidEventConfig = "Skipping invalid world event config entry"
	LogMsgUnknownEvent       = "No copy pool for world event, using fallback"
	LogMsgMessageSet         = "World message set"
	LogMsgMessageCleared     = "World message cleared"
	LogMsgPublishFailed      = "Failed to publish world message update"
)
