package api

import (
	"encoding/json"
	"net/http"

	"github.com/zkgov/ballotbox/voting"
)

// createProject creates a governance project.
// POST /projects
func (a *API) createProject(w http.ResponseWriter, r *http.Request) {
	req := &CreateProjectRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.WithErr(err).Write(w)
		return
	}
	project, err := a.voting.CreateProject(r.Context(), principal(r), voting.CreateProjectParams{
		Owner:        req.Owner,
		TokenAddress: req.TokenAddress,
		CensusRoot:   req.CensusRoot,
		CensusSize:   req.CensusSize,
		Config:       req.Config,
	})
	if err != nil {
		fromDomainError(err).Write(w)
		return
	}
	httpWriteJSON(w, project)
}

// project returns a single project.
// GET /projects/{projectId}
func (a *API) project(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUUID(w, r, ProjectURLParam)
	if !ok {
		return
	}
	project, err := a.voting.Project(r.Context(), id)
	if err != nil {
		fromDomainError(err).Write(w)
		return
	}
	httpWriteJSON(w, project)
}

// listProjects returns every project.
// GET /projects
func (a *API) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := a.voting.Projects(r.Context())
	if err != nil {
		fromDomainError(err).Write(w)
		return
	}
	httpWriteJSON(w, projects)
}
