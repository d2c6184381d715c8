// Package errors provides coded errors for the hexgame API.
//
// Every error produced by the game falls in one of three categories:
//   - validation: the action was rejected and nothing changed
//     (CodeInvalidArgument, CodeFailedPrecondition, CodePermissionDenied)
//   - not found: a referenced game, player, character, hex, card or battle
//     does not exist (CodeNotFound)
//   - infrastructure: storage or transport failed (CodeInternal,
//     CodeUnavailable)
//
// # Basic Usage
//
//	err := errors.NotFoundf("game %s not found", gameID)
//	err := errors.FailedPrecondition("not your turn")
//
// Wrapping keeps the code of the wrapped error, or assigns CodeInternal:
//
//	if err := repo.Update(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to save hex")
//	}
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRange("number_of_players", input.NumberOfPlayers, 2, 8, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # gRPC Integration
//
// Handlers return errors.ToGRPCError(err). Infrastructure errors are sent as
// "internal error" so storage details never reach clients; callers are
// expected to log them before converting.
package errors
