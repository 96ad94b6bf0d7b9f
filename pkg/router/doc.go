/*
Package router classifies submitted lines and resolves them.

Every line maps to exactly one Kind. Local kinds are resolved on the client by
pure functions of their argument and the current history; KindRemote forwards
the line verbatim to the execution service. Dispatch never fails: transport and
server errors come back as displayable "Error: ..." text.
*/
package router
