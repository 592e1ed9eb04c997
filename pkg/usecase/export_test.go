package usecase

// ChunkIDs is exported for testing
var ChunkIDs = chunkIDs
