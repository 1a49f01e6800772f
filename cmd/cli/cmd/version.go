package cmd

// Version is the release version stamped into output metadata
const Version = "0.1.0"
