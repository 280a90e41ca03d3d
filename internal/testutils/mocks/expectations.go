// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	creaturesmock "github.com/KirkDiggler/creature-seeder/internal/clients/creatures/mock"
	"github.com/KirkDiggler/creature-seeder/internal/clients/store"
	storemock "github.com/KirkDiggler/creature-seeder/internal/clients/store/mock"
	"github.com/KirkDiggler/creature-seeder/internal/entities"
	runreport "github.com/KirkDiggler/creature-seeder/internal/repositories/run_report"
	runreportmock "github.com/KirkDiggler/creature-seeder/internal/repositories/run_report/mock"
)

// ExpectCreatureFetch sets up a successful lookup of creature.ID
func ExpectCreatureFetch(ctx context.Context, mockClient *creaturesmock.MockClient, creature *entities.Creature) *gomock.Call {
	return mockClient.EXPECT().
		FetchCreature(ctx, creature.ID).
		Return(creature, nil)
}

// ExpectCreatureFetchError sets up a failed lookup of id
func ExpectCreatureFetchError(ctx context.Context, mockClient *creaturesmock.MockClient, id int, err error) *gomock.Call {
	return mockClient.EXPECT().
		FetchCreature(ctx, id).
		Return(nil, err)
}

// ExpectInsertEcho sets up an insert that echoes the payload back under recordID
func ExpectInsertEcho(ctx context.Context, mockClient *storemock.MockClient, recordID int) *gomock.Call {
	return mockClient.EXPECT().
		Insert(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, payload *entities.SeedPayload) (*entities.StoredRecord, error) {
			// Simulate the store assigning a row id
			return &entities.StoredRecord{ID: recordID, SeedPayload: *payload}, nil
		})
}

// ExpectPlaceholderDelete sets up the delete of the placeholder row
func ExpectPlaceholderDelete(
	ctx context.Context, mockClient *storemock.MockClient,
	id int, result store.DeleteResult, err error,
) *gomock.Call {
	return mockClient.EXPECT().
		DeleteByID(ctx, id).
		Return(result, err)
}

// ExpectReportSave sets up a successful save and copies the saved report
// into saved so the caller can inspect it.
func ExpectReportSave(mockRepo *runreportmock.MockRepository, saved *runreport.RunReport) *gomock.Call {
	return mockRepo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input runreport.SaveInput) (*runreport.SaveOutput, error) {
			*saved = *input.Report
			return &runreport.SaveOutput{Report: input.Report}, nil
		})
}
