package rename

// FileRename is one rename instruction on the wire.
type FileRename struct {
	CurrentName string `json:"current_name"`
	NewName     string `json:"new_name"`
}

// RenameRequest is the payload of the server's rename call. Season is only
// sent for TV renames.
type RenameRequest struct {
	AdditionID      string       `json:"addition_id"`
	NewTitle        string       `json:"new_title"`
	Season          *int         `json:"season,omitempty"`
	DeleteUntouched bool         `json:"delete_untouched"`
	Files           []FileRename `json:"files"`
}

// NewRenameRequest builds the request for a plan
func NewRenameRequest(additionID string, flow Flow, identity TitleIdentity, plan Plan) RenameRequest {
	req := RenameRequest{
		AdditionID:      additionID,
		NewTitle:        identity.Title(),
		DeleteUntouched: plan.DeleteUntouched,
		Files:           make([]FileRename, 0, len(plan.Entries)),
	}
	if flow == FlowTV {
		season := identity.SeasonNumber()
		req.Season = &season
	}
	for _, e := range plan.Entries {
		req.Files = append(req.Files, FileRename{CurrentName: e.SourceFile, NewName: e.ProposedName})
	}
	return req
}

// IsTV reports whether the request carries a season
func (r RenameRequest) IsTV() bool {
	return r.Season != nil
}
