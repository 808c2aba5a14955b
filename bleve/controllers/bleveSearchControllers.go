package controllers

import (
	"github.com/Cristiano-Arias/Portal-Proposta/bleve/repositories"
)

type SearchController struct {
	repo repositories.BleveRepositoryInterface
}

func NewSearchController(repo repositories.BleveRepositoryInterface) *SearchController {
	return &SearchController{repo: repo}
}
