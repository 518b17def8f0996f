// Package testutil provides testing utilities for the voicemail-whisper application.
//
// It contains three groups of helpers:
//
// 1. Store helpers (db_helpers.go):
//   - SetupTestStore: a migrated sqlite clip store in a temp dir, closed on cleanup
//   - SetupTestPostgresStore: the same against POSTGRES_TEST_URL, skipped when unset
//
// 2. Adapter fakes (mock_transcriber.go, mock_extractor.go):
//   - MockTranscriber / MockExtractor: testify mocks for strict expectations
//   - ScriptedTranscriber / ScriptedExtractor: canned per-tier results with latency,
//     failures and blocking, safe for concurrent pipelines
//
// 3. Fixtures (fixtures.go):
//   - Sample voicemail transcripts and model replies
//   - WriteAudioFile for creating placeholder audio on disk
//
// # Usage
//
//	func TestPipeline(t *testing.T) {
//	    store := testutil.SetupTestStore(t)
//	    transcriber := testutil.NewScriptedTranscriber(model.TierFast, model.TierAccurate)
//	    extractor := testutil.NewScriptedExtractor(testutil.ZacharyReply, 300)
//	    ...
//	}
package testutil
