package logic

// Version is the engine version reported by the command line front-end.
var Version = "0.1.0"
