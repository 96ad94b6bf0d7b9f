/*
Package executor implements the Remote Execution Service.

Every request runs through the same pipeline: the command length is checked,
the command is matched against a closed table of server actions, free-text
parameters are validated against a character whitelist, and the single
external provider (weather) is called under a timeout. Failures are then
presented according to their class:

  - ValidationError: shown verbatim.
  - Upstream timeout or unreachable provider: a fixed friendly message.
  - Anything else: the detail, or a generic message when sanitization is enabled.

Sanitization is a deployment-wide Config flag, never a per-request choice.
*/
package executor
