package shell

// CmdPlugin is a batch wrapper for cmd.exe. A bare pushd lists the stack; it
// is saved to a file rather than piped, since a pipe runs in a child process
// with an empty stack.
const CmdPlugin = `@echo off
rem cdd wrapper, generated by "cdd init cmd"
rem Put the directory holding this file on your PATH ahead of cdd.exe.
set "_cdd_tmp=%TEMP%\cdd-%RANDOM%"
pushd > "%_cdd_tmp%.txt"
cdd.exe --shell cmd %* < "%_cdd_tmp%.txt" > "%_cdd_tmp%.cmd"
call "%_cdd_tmp%.cmd"
del "%_cdd_tmp%.txt" "%_cdd_tmp%.cmd"
set _cdd_tmp=
`
