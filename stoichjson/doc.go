package stoichjson

//Package stoichjson implements serialization and unserialization of
//goStoich requests and results. Its planned use is the communication of
//goStoich with other, independent programs (a web page, a spreadsheet
//macro, a Python script), which only need to be able to write and read JSON.
//A request is one JSON object per line, and so is each answer, so a whole
//exercise sheet can be processed through a UNIX pipe or from a (possibly
//compressed) file.
