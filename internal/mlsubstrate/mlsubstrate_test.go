package mlsubstrate

import "testing"

func TestTrainOneBatchAdvancesStage(t *testing.T) {
	model, dataset := SelectStage("employee-1")
	firstStage := model.IDStage()
	secret1 := model.TrainOneBatchWithAcquiringTrainingSecret(dataset)
	if model.IDStage() == firstStage {
		t.Errorf("expected the stage id to advance after training")
	}
	secret2 := model.TrainOneBatchWithAcquiringTrainingSecret(dataset)
	if string(secret1) == string(secret2) {
		t.Errorf("expected consecutive training secrets to differ")
	}
}

func TestTrainingSecretDependsOnOwner(t *testing.T) {
	modelA, datasetA := SelectStage("employee-a")
	modelB, datasetB := SelectStage("employee-b")
	secretA := modelA.TrainOneBatchWithAcquiringTrainingSecret(datasetA)
	secretB := modelB.TrainOneBatchWithAcquiringTrainingSecret(datasetB)
	if string(secretA) == string(secretB) {
		t.Errorf("expected different owners to produce different training secrets")
	}
}
