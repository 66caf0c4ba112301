package repocontants

const MESSAGE_STATUS_COLLECTION = "MessageStatus"
