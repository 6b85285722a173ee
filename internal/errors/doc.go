// Package errors provides structured errors for the rpg-dice project.
//
// Every error carries a Code, a message safe to show a user, an optional
// cause and free-form metadata. Dice failures also carry a Reason naming
// the exact rule that was broken.
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.InvalidArgument("expected a 'd' between the count and the die size")
//	err := errors.OutOfRangef("dice count must be between %d and %d", 1, 99)
//
// Tagging a reason:
//
//	err := errors.InvalidArgument("modifier must be a whole number").
//	    WithReason(notation.ReasonModifierSyntax)
//
// Wrapping errors keeps the code, metadata and reason of the cause:
//
//	if err != nil {
//	    return errors.Wrap(err, "failed to roll")
//	}
//
// # Error Checking
//
//	if errors.IsOutOfRange(err) {
//	    // Handle range case
//	}
//
//	code := errors.GetCode(err)
//	reason := errors.GetReason(err)
//	message := errors.GetMessage(err)
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRange("grpc_port", cfg.GRPCPort, 1, 65535, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # gRPC Integration
//
// ToGRPCError maps the code to a gRPC status and attaches the reason and
// metadata as a google.rpc.ErrorInfo detail. FromGRPCError reverses it.
//
//	output, err := h.diceService.Roll(ctx, input)
//	if err != nil {
//	    return nil, errors.ToGRPCError(err)
//	}
package errors
