package handler

import (
	"net/http"

	"github.com/trackrcommerce/trackr-api/internal/domain"
	"github.com/trackrcommerce/trackr-api/internal/usecases/classifying"
)

const classificationIDParam = "classification_id"

func ListClassifications(service classifying.ClassificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		classifications, err := service.ListActive(r.Context(), brandID(r))
		respond(w, classifications, err)
	}
}

func GetClassification(service classifying.ClassificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		classification, err := service.Get(r.Context(), brandID(r), pathParam(r, classificationIDParam))
		respond(w, classification, err)
	}
}

func CreateClassification(service classifying.ClassificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request domain.ClassificationRequest
		if err := decodeBody(r, &request); err != nil {
			invalidBody(w, nil)
			return
		}

		classification, err := service.Create(r.Context(), brandID(r), &request)
		if err != nil {
			respond(w, nil, err)
			return
		}

		respondCreated(w, classification)
	}
}

func UpdateClassification(service classifying.ClassificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request domain.ClassificationRequest
		if err := decodeBody(r, &request); err != nil {
			invalidBody(w, nil)
			return
		}

		classification, err := service.Update(r.Context(), brandID(r), pathParam(r, classificationIDParam), &request)
		respond(w, classification, err)
	}
}

func DeleteClassification(service classifying.ClassificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := pathParam(r, classificationIDParam)
		if err := service.Delete(r.Context(), brandID(r), id); err != nil {
			respond(w, nil, err)
			return
		}

		respond(w, map[string]string{"id": id}, nil)
	}
}
